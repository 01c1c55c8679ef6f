package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPass_ForwardsPathQueryAndBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("X-Upstream-Path", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, r.Method+" "+r.URL.RawQuery+" "+r.Header.Get("Content-Type")+" "+string(body))
	}))
	defer upstream.Close()

	app := fiber.New()
	app.Post("/api/v1/builds/:id/revalidate", New(time.Second).Pass(upstream.URL+"/", "/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/builds/42/revalidate?dry=1", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/builds/42/revalidate", resp.Header.Get("X-Upstream-Path"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `POST dry=1 application/json {"a":1}`, string(data))
}

func TestPass_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	app := fiber.New()
	app.Get("/api/v1/materials", New(time.Second).Pass(url, "/api/v1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/materials", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
