// Copyright (c) 2026 Raytha. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Views carry their own per-view page-size policy (default + hard ceiling),
// so the clamping logic is exposed separately from request parsing.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 25
	// MaxLimit is the global upper bound for items per page to prevent abuse.
	MaxLimit = 1000
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int

	// limitProvided records whether the caller explicitly sent a limit,
	// so view-level defaults only apply when the caller stayed silent.
	limitProvided bool
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ClampTo applies a per-view page-size policy.
//
// When the caller omitted an explicit limit, defaultLimit is used. In all
// cases the result never exceeds maxLimit — the ceiling wins regardless of
// what the caller requested.
func (p Params) ClampTo(defaultLimit, maxLimit int) Params {
	clamped := p

	if !p.limitProvided && defaultLimit > 0 {
		clamped.Limit = defaultLimit
	}

	if maxLimit > 0 && clamped.Limit > maxLimit {
		clamped.Limit = maxLimit
	}

	return clamped
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	limitProvided := r.URL.Query().Get("limit") != ""
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
		limitProvided = false
	}

	return Params{Page: page, Limit: limit, limitProvided: limitProvided}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
