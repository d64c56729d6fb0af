// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Value string `json:"value"`
}

func TestPostJSON_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var in echo
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(echo{Value: strings.ToUpper(in.Value)})
	}))
	defer ts.Close()

	h := http.Header{}
	h.Set("x-api-key", "secret")

	var out echo
	err := PostJSON(context.Background(), ts.Client(), "Echo API", ts.URL, h, echo{Value: "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "HI", out.Value)
}

func TestPostJSON_StatusErrorNoRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(strings.Repeat("x", 2000)))
	}))
	defer ts.Close()

	var out echo
	err := PostJSON(context.Background(), ts.Client(), "Echo API", ts.URL, nil, echo{}, &out)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Len(t, se.Body, maxErrorBody+len("..."))
	assert.Contains(t, err.Error(), "Echo API returned 429")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPostJSON_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	var out echo
	err := PostJSON(context.Background(), ts.Client(), "Echo API", ts.URL, nil, echo{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding Echo API response")
}

func TestPostJSON_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out echo
	err := PostJSON(ctx, ts.Client(), "Echo API", ts.URL, nil, echo{}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"toolong", 3, "too..."},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Truncate([]byte(tt.in), tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
