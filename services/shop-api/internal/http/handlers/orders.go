package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"purem-oda-shop/services/shop-api/internal/calculator"
	"purem-oda-shop/shared/pkg/models"
)

const maxOrderBody = 1 << 20

type OrderCalculator interface {
	Calculate(ctx context.Context, order json.RawMessage) (json.RawMessage, error)
	Validate(ctx context.Context, order json.RawMessage) (json.RawMessage, error)
	Status() models.ServiceStatus
}

type OrdersHandler struct {
	Calc OrderCalculator
	Log  zerolog.Logger
}

type processorErrResp struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Calculate handles POST /api/order/calculate
func (h *OrdersHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, ok := readOrder(w, r)
	if !ok {
		return
	}
	out, err := h.Calc.Calculate(r.Context(), body)
	if err != nil {
		h.fail(w, calculator.CommandCalculate, err)
		return
	}
	writeRaw(w, out)
}

// Validate handles POST /api/order/validate
func (h *OrdersHandler) Validate(w http.ResponseWriter, r *http.Request) {
	body, ok := readOrder(w, r)
	if !ok {
		return
	}
	out, err := h.Calc.Validate(r.Context(), body)
	if err != nil {
		h.fail(w, calculator.CommandValidate, err)
		return
	}
	writeRaw(w, out)
}

// Status handles GET /api/java-service/status
func (h *OrdersHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Calc.Status())
}

func (h *OrdersHandler) fail(w http.ResponseWriter, command string, err error) {
	var ext *calculator.ExternalServiceError
	var exe *calculator.ExecutionError
	switch {
	case errors.Is(err, calculator.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, "Invalid order data: items array required")
	case errors.As(err, &ext):
		h.Log.Error().Str("command", command).Str("stderr", ext.Stderr).Msg("order processor error")
		writeJSON(w, http.StatusInternalServerError, processorErrResp{Error: "Order processor error", Details: ext.Stderr})
	case errors.As(err, &exe):
		h.Log.Error().Err(exe.Err).Str("command", command).Msg("order processor execution failed")
		writeJSON(w, http.StatusInternalServerError, processorErrResp{Error: "Failed to process order", Details: exe.Err.Error()})
	default:
		h.Log.Error().Err(err).Str("command", command).Msg("order processing failed")
		writeErr(w, http.StatusInternalServerError, "Failed to process order")
	}
}

// readOrder returns the body when it is a JSON document. An empty body is {}.
func readOrder(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxOrderBody))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "unreadable body")
		return nil, false
	}
	if len(b) == 0 {
		return json.RawMessage(`{}`), true
	}
	if !json.Valid(b) {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return nil, false
	}
	return json.RawMessage(b), true
}

func writeRaw(w http.ResponseWriter, out json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
