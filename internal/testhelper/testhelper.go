// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for the package tests.
package testhelper

import (
	"net/http"
	"os"
	"testing"
)

// MockRoundTripper is a http.RoundTripper that delegates to Fn.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

// RoundTrip implements http.RoundTripper.
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// FileResponse returns a response with the given status code and the content of the fixture file as body.
func FileResponse(t *testing.T, status int, file string) *http.Response {
	t.Helper()
	data, err := os.Open(file)
	if err != nil {
		t.Fatalf("failed to open JSON response file: %s", err)
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Body:       data,
		Header:     header,
	}
}

// FileRoundTripper returns a MockRoundTripper that answers every request with the given fixture file
// and counts the requests it served.
func FileRoundTripper(t *testing.T, status int, file string, calls *int) MockRoundTripper {
	t.Helper()
	return MockRoundTripper{Fn: func(*http.Request) (*http.Response, error) {
		if calls != nil {
			*calls++
		}
		return FileResponse(t, status, file), nil
	}}
}
