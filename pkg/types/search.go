// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is the body of a successful GET /api/search response.
type SearchResult struct {
	// Query echoes the query string as received by the server.
	Query string `json:"query" yaml:"query"`

	// Results holds the matching operators, at most limit of them.
	// Encoded as [] (never null) when nothing matches.
	Results []Operator `json:"results" yaml:"results"`
}
