package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/sportsbook/dto"
	"github.com/radieske/league-sportsbook/internal/sportsbook/repo"
	"github.com/radieske/league-sportsbook/internal/sportsbook/store"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

func newTestServer(t *testing.T, gw store.Gateway) http.Handler {
	t.Helper()
	if gw == nil {
		gw = repo.NewFile(filepath.Join(t.TempDir(), "state.json"))
	}
	st := store.New(zap.NewNop(), gw, nil, store.Options{StartingBalance: 1000})
	return NewServer(zap.NewNop(), st, 100, nil).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_WagerLifecycle(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/participants", dto.RegisterRequest{Name: "ana"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(1000), decodeBody[tournament.Participant](t, rec).Balance)

	// sem stake: usa o padrão de 100
	rec = do(t, h, http.MethodPost, "/wagers", dto.PlaceWagerRequest{
		Participant: "ana", Home: "Liverpool", Away: "Barcelona", Prediction: "home",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	w := decodeBody[tournament.Wager](t, rec)
	assert.Equal(t, int64(100), w.Stake)
	assert.Equal(t, tournament.PhaseGroups, w.Fixture.Phase)

	two, one := 2, 1
	rec = do(t, h, http.MethodPost, "/admin/results", dto.RecordResultRequest{
		Home: "Liverpool", Away: "Barcelona", HomeGoals: &two, AwayGoals: &one,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	settled := decodeBody[store.Settlement](t, rec)
	require.Len(t, settled.Results, 1)
	assert.Equal(t, int64(200), settled.Results[0].Payout)

	rec = do(t, h, http.MethodGet, "/participants", nil)
	board := decodeBody[[]store.LeaderboardEntry](t, rec)
	require.Len(t, board, 1)
	assert.Equal(t, int64(1100), board[0].Balance)
	assert.Equal(t, 1, board[0].Net)

	rec = do(t, h, http.MethodGet, "/participants/ana/wagers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hist := decodeBody[store.WagerHistory](t, rec)
	assert.Equal(t, 1, hist.Won)
	assert.Zero(t, hist.Pending)

	rec = do(t, h, http.MethodGet, "/groups/Grupo%20A/standings", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	gs := decodeBody[store.GroupStandings](t, rec)
	assert.Equal(t, tournament.TeamID("Liverpool"), gs.Rows[0].Team)
	assert.Equal(t, 3, gs.Rows[0].Points)

	// confronto decidido não aceita nova aposta nem novo resultado
	rec = do(t, h, http.MethodPost, "/wagers", dto.PlaceWagerRequest{
		Participant: "ana", Home: "Liverpool", Away: "Barcelona", Prediction: "away",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = do(t, h, http.MethodPost, "/admin/results", dto.RecordResultRequest{
		Home: "Liverpool", Away: "Barcelona", HomeGoals: &one, AwayGoals: &one,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_ErrorStatuses(t *testing.T) {
	h := newTestServer(t, nil)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/participants", dto.RegisterRequest{Name: "bia"}).Code)

	big, zero := int64(5000), int64(0)
	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"duplicate participant", http.MethodPost, "/participants", dto.RegisterRequest{Name: "bia"}, http.StatusConflict},
		{"blank participant", http.MethodPost, "/participants", dto.RegisterRequest{Name: "  "}, http.StatusUnprocessableEntity},
		{"bad json", http.MethodPost, "/participants", `{"name":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/participants", `{"nome":"x"}`, http.StatusBadRequest},
		{"unknown participant", http.MethodPost, "/wagers", dto.PlaceWagerRequest{Participant: "zeca", Home: "Liverpool", Away: "Barcelona", Prediction: "home"}, http.StatusNotFound},
		{"unknown fixture", http.MethodPost, "/wagers", dto.PlaceWagerRequest{Participant: "bia", Home: "Liverpool", Away: "Real Madrid", Prediction: "home"}, http.StatusNotFound},
		{"invalid prediction", http.MethodPost, "/wagers", dto.PlaceWagerRequest{Participant: "bia", Home: "Liverpool", Away: "Barcelona", Prediction: "win"}, http.StatusUnprocessableEntity},
		{"insufficient funds", http.MethodPost, "/wagers", dto.PlaceWagerRequest{Participant: "bia", Home: "Liverpool", Away: "Barcelona", Prediction: "draw", Stake: &big}, http.StatusUnprocessableEntity},
		{"zero stake", http.MethodPost, "/wagers", dto.PlaceWagerRequest{Participant: "bia", Home: "Liverpool", Away: "Barcelona", Prediction: "draw", Stake: &zero}, http.StatusUnprocessableEntity},
		{"missing goals", http.MethodPost, "/admin/results", dto.RecordResultRequest{Home: "Liverpool", Away: "Barcelona"}, http.StatusBadRequest},
		{"unknown history", http.MethodGet, "/participants/zeca/wagers", nil, http.StatusNotFound},
		{"unknown group", http.MethodGet, "/groups/Grupo%20Z/standings", nil, http.StatusNotFound},
		{"bad limit", http.MethodGet, "/fixtures?limit=-1", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}

	// nenhuma rejeição mexeu no saldo
	board := decodeBody[[]store.LeaderboardEntry](t, do(t, h, http.MethodGet, "/participants", nil))
	require.Len(t, board, 1)
	assert.Equal(t, int64(1000), board[0].Balance)
}

func TestServer_FixturesAndSummary(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/fixtures?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]tournament.Fixture](t, rec), 5)

	rec = do(t, h, http.MethodGet, "/fixtures", nil)
	assert.Len(t, decodeBody[[]tournament.Fixture](t, rec), 24)

	rec = do(t, h, http.MethodGet, "/groups", nil)
	assert.Len(t, decodeBody[[]store.GroupStandings](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/tournament", nil)
	sum := decodeBody[store.Summary](t, rec)
	assert.Equal(t, tournament.PhaseGroups, sum.Phase)
	assert.Equal(t, 24, sum.Pending)
}

func TestServer_AdvanceAndReset(t *testing.T) {
	h := newTestServer(t, nil)
	for _, f := range decodeBody[[]tournament.Fixture](t, do(t, h, http.MethodGet, "/fixtures", nil)) {
		hg, ag := 1, 0
		rec := do(t, h, http.MethodPost, "/admin/results", dto.RecordResultRequest{
			Home: string(f.Key.Home), Away: string(f.Key.Away), HomeGoals: &hg, AwayGoals: &ag,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodPost, "/admin/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	adv := decodeBody[dto.AdvanceResponse](t, rec)
	assert.Equal(t, "semifinals", adv.Phase)
	assert.Len(t, adv.Qualifiers, 4)

	rec = do(t, h, http.MethodPost, "/admin/advance", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/admin/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decodeBody[store.Summary](t, do(t, h, http.MethodGet, "/tournament", nil))
	assert.Equal(t, tournament.PhaseGroups, sum.Phase)
	assert.Zero(t, sum.Matches)
}

type brokenGateway struct{}

func (brokenGateway) Load(context.Context) (*tournament.State, error) { return nil, repo.ErrNoState }
func (brokenGateway) Save(context.Context, *tournament.State) error {
	return errors.New("disk full")
}

func TestServer_PersistenceFailureKeepsResult(t *testing.T) {
	h := newTestServer(t, brokenGateway{})

	rec := do(t, h, http.MethodPost, "/participants", dto.RegisterRequest{Name: "caio"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Error  string                 `json:"error"`
		Result tournament.Participant `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "persistence failure")
	assert.Equal(t, tournament.ParticipantID("caio"), body.Result.ID)

	// o registro valeu em memória
	board := decodeBody[[]store.LeaderboardEntry](t, do(t, h, http.MethodGet, "/participants", nil))
	assert.Len(t, board, 1)
}
