package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveWebhook(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveWebhook("prepare", 0, 3*time.Millisecond)
	m.ObserveWebhook("prepare", 0, time.Millisecond)
	m.ObserveWebhook("complete", -1, time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(m.webhookCnt.WithLabelValues("prepare", "0")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.webhookCnt.WithLabelValues("complete", "-1")))
}

func TestObserveWebhook_NilSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() { m.ObserveWebhook("prepare", 0, time.Millisecond) })
}

func TestMiddlewareAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad") })
	app.Get("/metrics", Handler(reg))

	_, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(m.reqCnt.WithLabelValues("200", "GET", "/ping")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.reqCnt.WithLabelValues("400", "GET", "/boom")))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "clickpay_req_total")
}
