// Package handlers provides HTTP handlers for cash-flow analysis operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/finanalysis/internal/modules/analysis"
	"github.com/aristath/finanalysis/pkg/formulas"
)

const contentTypeMsgpack = "application/msgpack"

// maxBodyBytes caps request bodies; series are plain float arrays
const maxBodyBytes = 1 << 20

// Handler handles analysis HTTP requests
type Handler struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(service *analysis.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analysis").Logger(),
	}
}

// HandleNPV handles POST /api/analysis/npv
func (h *Handler) HandleNPV(w http.ResponseWriter, r *http.Request) {
	var req analysis.NPVRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.NPV(req)
	if err != nil {
		h.writeError(w, r, statusFor(err), err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleIRR handles POST /api/analysis/irr
//
// A solve that does not converge is answered with 422 and the solve details,
// so clients can tell "no root near the guess" apart from a bad request.
func (h *Handler) HandleIRR(w http.ResponseWriter, r *http.Request) {
	var req analysis.IRRRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.IRR(req)
	if err != nil {
		if errors.Is(err, formulas.ErrDidNotConverge) && result != nil {
			h.write(w, r, http.StatusUnprocessableEntity, map[string]interface{}{
				"data":     result,
				"error":    err.Error(),
				"metadata": metadata(),
			})
			return
		}
		h.writeError(w, r, statusFor(err), err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleCAGR handles POST /api/analysis/cagr
func (h *Handler) HandleCAGR(w http.ResponseWriter, r *http.Request) {
	var req analysis.CAGRRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.CAGR(req)
	if err != nil {
		h.writeError(w, r, statusFor(err), err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleMonthlyCAGR handles POST /api/analysis/cagr/monthly
func (h *Handler) HandleMonthlyCAGR(w http.ResponseWriter, r *http.Request) {
	var req analysis.MonthlyCAGRRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.CAGRFromMonthlyPrices(req)
	if err != nil {
		h.writeError(w, r, statusFor(err), err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleSMA handles POST /api/analysis/sma
func (h *Handler) HandleSMA(w http.ResponseWriter, r *http.Request) {
	var req analysis.SMARequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.SMA(req)
	if err != nil {
		h.writeError(w, r, statusFor(err), err)
		return
	}

	h.writeData(w, r, http.StatusOK, result)
}

// HandleSummary handles POST /api/analysis/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	var req analysis.SummaryRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.writeData(w, r, http.StatusOK, h.service.Summary(req))
}

// HandleGetDefaults handles GET /api/analysis/irr/defaults
func (h *Handler) HandleGetDefaults(w http.ResponseWriter, r *http.Request) {
	defaults := h.service.Defaults()
	h.writeData(w, r, http.StatusOK, map[string]interface{}{
		"guess":          defaults.Guess,
		"max_iterations": defaults.MaxIterations,
		"tolerance":      defaults.Tolerance,
	})
}

// statusFor maps a calculation error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, formulas.ErrDidNotConverge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, formulas.ErrInvalidRate),
		errors.Is(err, formulas.ErrZeroDerivative),
		errors.Is(err, formulas.ErrEmptyInput),
		errors.Is(err, formulas.ErrInvalidInput),
		errors.Is(err, formulas.ErrInvalidWindow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.log.Debug().Err(err).Str("path", r.URL.Path).Msg("Invalid request body")
		h.writeError(w, r, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}
	return true
}

func metadata() map[string]interface{} {
	return map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
	}
}

func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	h.write(w, r, status, map[string]interface{}{
		"data":     data,
		"metadata": metadata(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.write(w, r, status, map[string]interface{}{
		"error": err.Error(),
	})
}

// write encodes msgpack when the client asks for it, JSON otherwise
func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(status)

		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(data); err != nil {
			h.log.Error().Err(err).Msg("Failed to encode msgpack response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
