package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

func TestClient_RecordResult(t *testing.T) {
	var got recordResultRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/results", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := New(srv.URL).RecordResult(context.Background(), events.MatchResult{Home: "Liverpool", Away: "Barcelona", HomeGoals: 0, AwayGoals: 3})
	require.NoError(t, err)
	assert.Equal(t, recordResultRequest{Home: "Liverpool", Away: "Barcelona", AwayGoals: 3}, got)
}

func TestClient_StatusClassification(t *testing.T) {
	code := http.StatusConflict
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"x"}`, code)
	}))
	defer srv.Close()
	c := New(srv.URL)

	err := c.RecordResult(context.Background(), events.MatchResult{})
	require.Error(t, err)
	assert.True(t, AlreadyRecorded(err))
	assert.True(t, Permanent(err))

	code = http.StatusNotFound
	err = c.RecordResult(context.Background(), events.MatchResult{})
	assert.False(t, AlreadyRecorded(err))
	assert.True(t, Permanent(err))

	code = http.StatusServiceUnavailable
	err = c.RecordResult(context.Background(), events.MatchResult{})
	assert.False(t, Permanent(err))
	assert.Contains(t, err.Error(), "503")
}
