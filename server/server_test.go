// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coordkit/coordkit/parse"
)

func setupServerTest() *gin.Engine {
	gin.SetMode(gin.TestMode)

	return NewServer(parse.New(parse.DefaultConfig())).Router()
}

func postParse(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/parse", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func TestListFormatsAPI(t *testing.T) {
	router := setupServerTest()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/formats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var formats []formatEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &formats))
	assert.NotEmpty(t, formats)

	// Evaluation order: tiers never decrease.
	for i := 1; i < len(formats); i++ {
		assert.GreaterOrEqual(t, formats[i].Tier, formats[i-1].Tier)
	}
}

func TestParseAPI(t *testing.T) {
	router := setupServerTest()

	w := postParse(t, router, gin.H{"text": "SRID=4326;POINT(30.5 50.45)"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res parse.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "EWKT", res.Format)
	assert.Equal(t, "EPSG:4326", res.CRS)
	assert.InDelta(t, 50.45, res.Point.Lat, 1e-9)
	assert.InDelta(t, 30.5, res.Point.Lng, 1e-9)
}

func TestParseAPIOrderPreference(t *testing.T) {
	router := setupServerTest()

	w := postParse(t, router, gin.H{"text": "40.7128, -74.0060", "order": "lon,lat"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res parse.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.InDelta(t, -74.006, res.Point.Lat, 1e-9)
	assert.InDelta(t, 40.7128, res.Point.Lng, 1e-9)
}

func TestParseAPIShortPlusCodeWithReference(t *testing.T) {
	router := setupServerTest()

	w := postParse(t, router, gin.H{
		"text":      "7VP3+PR",
		"reference": gin.H{"lat": 10.77, "lng": 106.7},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var res parse.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Plus Codes", res.Format)
	assert.InDelta(t, 10.787, res.Point.Lat, 0.01)
}

func TestParseAPIFailure(t *testing.T) {
	router := setupServerTest()

	w := postParse(t, router, gin.H{"text": "not a coordinate"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var failure parseFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, "no_candidate", failure.Kind)
}

func TestParseAPIFailureListsAttempts(t *testing.T) {
	router := setupServerTest()

	w := postParse(t, router, gin.H{"text": "33N 315428 5741324 1234"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var failure parseFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, "all_candidates_failed", failure.Kind)
	assert.Contains(t, failure.Attempted, "UTM")
}

func TestParseAPIBadRequests(t *testing.T) {
	router := setupServerTest()

	tests := []struct {
		name string
		body any
	}{
		{"missing text", gin.H{}},
		{"invalid order", gin.H{"text": "1, 2", "order": "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postParse(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
