package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

// StatusError é uma resposta não-2xx do sportsbook
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sportsbook http %d: %s", e.Code, e.Body)
}

// Permanent indica que repetir a chamada não muda o resultado (4xx)
func Permanent(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500
}

// AlreadyRecorded: o confronto já tem resultado (409), reentrega do Kafka
func AlreadyRecorded(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusConflict
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

type recordResultRequest struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

// RecordResult chama POST /admin/results
func (c *Client) RecordResult(ctx context.Context, r events.MatchResult) error {
	body, _ := json.Marshal(recordResultRequest{Home: r.Home, Away: r.Away, HomeGoals: r.HomeGoals, AwayGoals: r.AwayGoals})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/admin/results", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &StatusError{Code: res.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}
