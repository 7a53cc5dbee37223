package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mrops-br/store-inventory-api/internal/infrastructure/http/response"
)

// DemoRunner is the scripted walkthrough behind the /demo routes
type DemoRunner interface {
	Run(ctx context.Context) ([]string, error)
	Discount(ctx context.Context) ([]string, error)
	Recalculate(ctx context.Context) ([]string, error)
}

// DemoHandler renders demo steps as plain text
type DemoHandler struct {
	runner DemoRunner
	logger *slog.Logger
}

func NewDemoHandler(runner DemoRunner, logger *slog.Logger) *DemoHandler {
	return &DemoHandler{
		runner: runner,
		logger: logger.With("component", "demo"),
	}
}

// Run handles POST /demo/run
func (h *DemoHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.runner.Run)
}

// Discount handles POST /demo/discount
func (h *DemoHandler) Discount(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.runner.Discount)
}

// Recalculate handles POST /demo/recalculate
func (h *DemoHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.runner.Recalculate)
}

func (h *DemoHandler) render(w http.ResponseWriter, r *http.Request, step func(context.Context) ([]string, error)) {
	lines, err := step(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Demo step failed", slog.String("error", err.Error()))
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	for _, line := range lines {
		h.logger.InfoContext(r.Context(), line)
	}
	response.Text(w, http.StatusOK, lines)
}
