package handler

import (
	"errors"
	"net/http"
	"strings"

	"cbrrates/internal/domain"
	"cbrrates/internal/rate"

	"github.com/sirupsen/logrus"
)

type GetRatesResponse struct {
	Dates []rate.DayView `json:"dates"`
}

// GetRates godoc
// @Summary Rates since last Monday
// @Description Daily rates from the Monday on or before the reference date up to it, oldest first
// @Tags Rates
// @Produce json
// @Param date query string false "Reference date, yyyy-mm-dd (default today)"
// @Param currencies query string false "Comma separated currency codes (default configured set)"
// @Success 200 {object} GetRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	now := h.service.Now()
	reference := now

	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		key, err := domain.ParseDateKey(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		reference = key.In(now.Location())
	}

	var wanted domain.CurrencySet
	if raw := r.URL.Query().Get("currencies"); raw != "" {
		codes, err := rate.ParseCodes(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		wanted = codes
	} else {
		wanted = h.service.Wanted()
	}

	rates, err := h.service.CollectFor(r.Context(), reference, wanted)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRates", "date": reference.Format(domain.ReportLayout)}).Error("couldn't collect rates")
		if isUpstreamError(err) {
			writeError(w, http.StatusBadGateway, "ups, the bank feed couldn't be read this time")
			return
		}
		writeError(w, http.StatusInternalServerError, "ups, couldn't collect rates this time")
		return
	}

	writeJSON(w, http.StatusOK, GetRatesResponse{Dates: rate.Views(rates)})
}

func isUpstreamError(err error) bool {
	return errors.Is(err, domain.ErrTransport) ||
		errors.Is(err, domain.ErrParse) ||
		errors.Is(err, domain.ErrMissingField) ||
		errors.Is(err, domain.ErrTypeMismatch)
}
