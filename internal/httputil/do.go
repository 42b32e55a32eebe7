// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the client and CLI.
package httputil

import (
	"fmt"
	"io"
	"net/http"
)

// Response is a fully read HTTP response. Body holds the bytes exactly as
// received; nothing is parsed or reshaped.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StatusError reports a response whose status is outside 2xx. The body is
// kept so callers can show what the server said.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
}

// Do executes req exactly once and reads the whole body. Transport errors,
// body read errors and non-2xx statuses are returned as errors with a nil
// Response; a non-2xx status is a *StatusError. There is no retry.
//
// The request's context governs cancellation.
func Do(client *http.Client, req *http.Request) (*Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
