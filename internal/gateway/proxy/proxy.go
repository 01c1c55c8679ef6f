package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

// заголовки, которые не пробрасываются между соединениями
var hopHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
}

var forwardedRequestHeaders = []string{"Content-Type", "Accept", "Authorization"}

type Proxy struct {
	client *http.Client
}

func New(timeout time.Duration) *Proxy {
	return &Proxy{client: &http.Client{Timeout: timeout}}
}

// Pass проксирует запрос в upstream, сохраняя путь без префикса gateway
// и строку запроса: /api/v1/builds/42?format=csv -> {upstream}/builds/42?format=csv.
func (p *Proxy) Pass(upstream, stripPrefix string) fiber.Handler {
	upstream = strings.TrimRight(upstream, "/")
	return func(c fiber.Ctx) error {
		target := upstream + strings.TrimPrefix(c.Path(), stripPrefix)
		if query := c.Request().URI().QueryString(); len(query) > 0 {
			target += "?" + string(query)
		}
		return p.Forward(c, target)
	}
}

// Forward проксирует запрос по переданному URL.
func (p *Proxy) Forward(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] %s %s -> %s (%d bytes)", c.Method(), c.Path(), targetURL, len(c.Body()))

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	for _, name := range forwardedRequestHeaders {
		if value := c.Get(name); value != "" {
			req.Header.Set(name, value)
		}
	}
	req.Header.Set("X-Forwarded-For", c.IP())

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if hopHeaders[key] || len(values) == 0 {
			continue
		}
		c.Set(key, values[0])
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
