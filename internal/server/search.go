// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/pdiddy/operator-search/pkg/types"
)

const (
	defaultLimit   = 10
	maxLimit       = 100
	minQueryLength = 2
)

var (
	errQueryRequired = errors.New("query: field required")
	errQueryTooShort = fmt.Errorf("query: ensure this value has at least %d characters", minQueryLength)
	errLimitNotInt   = errors.New("limit: value is not a valid integer")
	errLimitRange    = fmt.Errorf("limit: ensure this value is greater than 0 and at most %d", maxLimit)
)

type errorBody struct {
	Detail string `json:"detail"`
}

// parseSearchParams validates query and limit the way the search API
// always has: query of at least two characters, limit in 1..100.
func parseSearchParams(r *http.Request) (string, int, error) {
	values := r.URL.Query()

	if !values.Has("query") {
		return "", 0, errQueryRequired
	}
	query := values.Get("query")
	if utf8.RuneCountInString(query) < minQueryLength {
		return "", 0, errQueryTooShort
	}

	limit := defaultLimit
	if values.Has("limit") {
		n, err := strconv.Atoi(values.Get("limit"))
		if err != nil {
			return "", 0, errLimitNotInt
		}
		if n <= 0 || n > maxLimit {
			return "", 0, errLimitRange
		}
		limit = n
	}
	return query, limit, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, limit, err := parseSearchParams(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
		return
	}

	results, err := s.searcher.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("search failed", "query", query, "limit", limit, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "internal error"})
		return
	}
	if results == nil {
		results = []types.Operator{}
	}

	writeJSON(w, http.StatusOK, types.SearchResult{Query: query, Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
