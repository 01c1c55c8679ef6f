package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe опрашивает /health/live каждого сервиса. Если хоть один
// не ответил 200, gateway не готов.
func ReadinessProbe(upstreams map[string]string, timeout time.Duration) fiber.Handler {
	client := &http.Client{Timeout: timeout}

	return func(c fiber.Ctx) error {
		ctx := c.Context()
		var (
			mu       sync.Mutex
			wg       sync.WaitGroup
			statuses = make(map[string]string, len(upstreams))
			ready    = true
		)

		for name, base := range upstreams {
			wg.Add(1)
			go func(name, base string) {
				defer wg.Done()
				status := probe(ctx, client, strings.TrimRight(base, "/")+"/health/live")

				mu.Lock()
				defer mu.Unlock()
				statuses[name] = status
				if status != "up" {
					ready = false
				}
			}(name, base)
		}
		wg.Wait()

		if !ready {
			log.Printf("[HEALTH] Not ready: %v", statuses)
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "not ready",
				"services": statuses,
			})
		}
		return c.JSON(fiber.Map{
			"status":   "ready",
			"services": statuses,
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

func probe(ctx context.Context, client *http.Client, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "down"
	}
	resp, err := client.Do(req)
	if err != nil {
		return "down"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "down"
	}
	return "up"
}
