package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrops-br/store-inventory-api/internal/app/demo"
	"github.com/mrops-br/store-inventory-api/internal/app/service"
	"github.com/mrops-br/store-inventory-api/internal/domain"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/config"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", DurationMS: true},
		OTLP:   config.OTLPConfig{ServiceName: "store-inventory-api-test"},
		Log:    config.LogConfig{Level: "error"},
	}
	telem := telemetry.NewNoOpTelemetry(io.Discard, cfg)
	tracer := telem.TracerProvider.Tracer("test")
	meter := telem.MeterProvider.Meter("test")

	repo := memory.NewInventoryRepository(tracer, telem.Logger)
	svc := service.NewInventoryService(repo, domain.NewFactory(), tracer, meter, telem.Logger)
	srv := NewServer(&cfg.Server,
		handler.NewInventoryHandler(svc, telem.Logger),
		handler.NewDemoHandler(demo.NewRunner(svc, telem.Logger), telem.Logger),
		telem.Logger,
		telem,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func Test_Server_Health(t *testing.T) {
	ts := newTestServer(t)

	code, body := get(t, ts, "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}

func Test_Server_DemoSequence(t *testing.T) {
	// given
	ts := newTestServer(t)

	// when discount is pressed before run
	code, body := post(t, ts, "/demo/discount", "")

	// then
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Run demo first!\n", body)

	code, body = post(t, ts, "/demo/run", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Total inventory value: $330.00")
	assert.Contains(t, body, "Product: Milk, Price: $1.50, Quantity: 10, Expiration Date: 2025-01-31")

	code, _ = post(t, ts, "/demo/discount", "")
	assert.Equal(t, http.StatusOK, code)

	code, body = post(t, ts, "/demo/recalculate", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recalculated inventory value: $280.90\n", body)
}

func Test_Server_ProductLifecycle(t *testing.T) {
	ts := newTestServer(t)

	code, body := post(t, ts, "/products", `{"name":"Apple","price":2.5,"quantity":4}`)
	require.Equal(t, http.StatusCreated, code, body)

	code, body = post(t, ts, "/products", `{"name":"Ghost","price":-1,"quantity":4}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "invalid argument")

	code, body = get(t, ts, "/products/search?name=APPLE")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"name":"Apple"`)

	code, _ = get(t, ts, "/products/search?name=pear")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = post(t, ts, "/inventory/discount", `{"discount":0.5}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"applied":1`)

	code, body = get(t, ts, "/inventory/value")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"value":5,"formatted":"$5.00"}`, body)

	code, body = get(t, ts, "/inventory/stats")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"constructed":1,"stored":1}`, body)
}

func Test_Server_OverflowingValuation(t *testing.T) {
	// given a product whose line total overflows float64
	ts := newTestServer(t)

	// when
	code, body := post(t, ts, "/products", `{"name":"Galaxy","price":1e200,"quantity":1e200}`)

	// then every JSON route answers with an error body instead of an empty success
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "unsupported value")

	for _, path := range []string{"/inventory/value", "/products", "/products/search?name=galaxy"} {
		code, body = get(t, ts, path)
		assert.Equal(t, http.StatusInternalServerError, code, path)
		assert.Contains(t, body, `"error":"internal_server_error"`, path)
	}

	code, body = get(t, ts, "/inventory/stats")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"constructed":1,"stored":1}`, body)
}
