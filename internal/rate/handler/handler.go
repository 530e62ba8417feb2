package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cbrrates/internal/domain"
)

type RatesService interface {
	CollectFor(ctx context.Context, reference time.Time, wanted domain.CurrencySet) (*domain.RatesByDate, error)
	Wanted() domain.CurrencySet
	Now() time.Time
}

type Handler struct {
	service RatesService
}

func NewRateHandler(service RatesService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}
