package dto

import "time"

type QuoteRequest struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type BatchQuoteRequest struct {
	Destinations []QuoteRequest `json:"destinations"`
}

type PricingResponse struct {
	BaseCost     float64 `json:"base_cost"`
	ProfitMargin float64 `json:"profit_margin"`
	ClientPrice  float64 `json:"client_price"`
}

type QuoteResponse struct {
	Address         string          `json:"address,omitempty"`
	DistanceKm      float64         `json:"distance_km"`
	DurationMinutes int             `json:"duration_minutes"`
	Vehicle         string          `json:"vehicle"`
	Pricing         PricingResponse `json:"pricing"`
	CalculatedAt    time.Time       `json:"calculated_at"`
	IsEstimate      bool            `json:"is_estimate"`
	Resolved        bool            `json:"resolved"`
	Cached          bool            `json:"cached"`
	OutOfCoverage   bool            `json:"out_of_coverage"`
	MaxDistanceKm   float64         `json:"max_distance_km"`
}

type BatchQuoteResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

type FeeResponse struct {
	DistanceKm float64 `json:"distance_km"`
	Vehicle    string  `json:"vehicle"`
	BaseCost   float64 `json:"base_cost"`
	Profit     float64 `json:"profit"`
	Total      float64 `json:"total"`
}
