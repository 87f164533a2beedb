package handlers

import (
	"context"
	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/services"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const maxBatchSize = 20

type DeliveryService interface {
	Quote(ctx context.Context, dest domain.Location) (services.DeliveryQuote, error)
	QuoteMany(ctx context.Context, dests []domain.Location) ([]services.DeliveryQuote, error)
	Fee(distanceKm float64) domain.FeeQuote
	Forget(ctx context.Context, address string)
	Reset(ctx context.Context)
}

// DeliveryHandler exposes fee quotes and cache maintenance.
type DeliveryHandler struct {
	Service DeliveryService
}

func (h *DeliveryHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := toLocation(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q, err := h.Service.Quote(r.Context(), loc)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toQuoteResponse(req.Address, q))
}

func (h *DeliveryHandler) QuoteBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchQuoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Destinations) == 0 || len(req.Destinations) > maxBatchSize {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("destinations must contain between 1 and %d entries", maxBatchSize))
		return
	}

	locs := make([]domain.Location, 0, len(req.Destinations))
	for i, d := range req.Destinations {
		loc, err := toLocation(d)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("destinations[%d]: %v", i, err))
			return
		}
		locs = append(locs, loc)
	}

	quotes, err := h.Service.QuoteMany(r.Context(), locs)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	res := dto.BatchQuoteResponse{Quotes: make([]dto.QuoteResponse, 0, len(quotes))}
	for i, q := range quotes {
		res.Quotes = append(res.Quotes, toQuoteResponse(req.Destinations[i].Address, q))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *DeliveryHandler) Fee(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("distance_km")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "distance_km is required")
		return
	}
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(km) || math.IsInf(km, 0) {
		writeError(w, r, http.StatusBadRequest, "distance_km must be a finite number")
		return
	}

	f := h.Service.Fee(km)
	writeJSON(w, r, http.StatusOK, dto.FeeResponse{
		DistanceKm: km,
		Vehicle:    string(f.Vehicle),
		BaseCost:   f.BaseCost,
		Profit:     f.Profit,
		Total:      f.Total,
	})
}

// InvalidateCache drops one address (?address=) or the whole cache.
func (h *DeliveryHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if addr := strings.TrimSpace(r.URL.Query().Get("address")); addr != "" {
		h.Service.Forget(r.Context(), addr)
	} else {
		h.Service.Reset(r.Context())
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DeliveryHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrInvalidDestination) {
		writeError(w, r, http.StatusBadRequest, services.ErrInvalidDestination.Error())
		return
	}
	obs.FromContext(r.Context()).WithError(err).Error("delivery quote failed")
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toLocation(req dto.QuoteRequest) (domain.Location, error) {
	loc := domain.Location{Address: strings.TrimSpace(req.Address)}

	if (req.Lat == nil) != (req.Lng == nil) {
		return domain.Location{}, errors.New("lat and lng must be provided together")
	}
	if req.Lat != nil {
		c := domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
		if !c.Valid() {
			return domain.Location{}, errors.New("lat/lng out of range")
		}
		loc.Coords = &c
	}

	if loc.Empty() {
		return domain.Location{}, services.ErrInvalidDestination
	}
	return loc, nil
}

func toQuoteResponse(address string, q services.DeliveryQuote) dto.QuoteResponse {
	c := q.Calculation
	return dto.QuoteResponse{
		Address:         strings.TrimSpace(address),
		DistanceKm:      c.DistanceKm,
		DurationMinutes: c.DurationMinutes,
		Vehicle:         string(c.Vehicle),
		Pricing: dto.PricingResponse{
			BaseCost:     c.Pricing.BaseCost,
			ProfitMargin: c.Pricing.ProfitMargin,
			ClientPrice:  c.Pricing.ClientPrice,
		},
		CalculatedAt:  c.CalculatedAt,
		IsEstimate:    c.IsEstimate,
		Resolved:      q.Resolved,
		Cached:        q.Cached,
		OutOfCoverage: q.OutOfCoverage,
		MaxDistanceKm: q.MaxDistanceKm,
	}
}

