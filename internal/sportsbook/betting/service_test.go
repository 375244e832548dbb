package betting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/league-sportsbook/internal/sportsbook/ledger"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

var fixtureAB = tournament.FixtureKey{Home: "A", Away: "B", Phase: tournament.PhaseGroups}

func newState(t *testing.T, balance int64) *tournament.State {
	t.Helper()
	st := tournament.NewState([]tournament.Group{{Name: "G", Teams: []tournament.TeamID{"A", "B"}}})
	_, err := ledger.New(st).Register("ana", balance)
	require.NoError(t, err)
	return st
}

func newTestService() *Service {
	n := 0
	return &Service{
		now: func() time.Time { return time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC) },
		newID: func() string {
			n++
			return "w" + string(rune('0'+n))
		},
	}
}

func TestPlaceWager_DebitsAndAppends(t *testing.T) {
	st := newState(t, 1000)
	svc := newTestService()

	w, err := svc.PlaceWager(st, "ana", fixtureAB, tournament.PredictionHome, 100)
	require.NoError(t, err)

	assert.Equal(t, tournament.WagerID("w1"), w.ID)
	assert.False(t, w.Settled)
	assert.Nil(t, w.Outcome)
	assert.Equal(t, int64(100), w.Stake)
	assert.Equal(t, int64(900), st.Participants["ana"].Balance)
	require.Len(t, st.Wagers, 1)
	assert.Same(t, w, st.Wagers[0])
}

func TestPlaceWager_Failures(t *testing.T) {
	decided := tournament.Match{Key: fixtureAB, Group: "G", HomeGoals: 1}

	cases := []struct {
		name       string
		who        tournament.ParticipantID
		key        tournament.FixtureKey
		prediction tournament.Prediction
		stake      int64
		matches    []tournament.Match
		want       error
	}{
		{"unknown participant", "bob", fixtureAB, tournament.PredictionHome, 10, nil, tournament.ErrUnknownParticipant},
		{"unknown fixture", "ana", tournament.FixtureKey{Home: "A", Away: "Z", Phase: tournament.PhaseGroups}, tournament.PredictionHome, 10, nil, tournament.ErrUnknownFixture},
		{"knockout fixture", "ana", tournament.FixtureKey{Home: "A", Away: "B", Phase: tournament.PhaseFinal}, tournament.PredictionHome, 10, nil, tournament.ErrUnknownFixture},
		{"decided", "ana", fixtureAB, tournament.PredictionHome, 10, []tournament.Match{decided}, tournament.ErrFixtureAlreadyDecided},
		{"bad prediction", "ana", fixtureAB, "local", 10, nil, tournament.ErrInvalidPrediction},
		{"zero stake", "ana", fixtureAB, tournament.PredictionDraw, 0, nil, tournament.ErrInvalidStake},
		{"negative stake", "ana", fixtureAB, tournament.PredictionDraw, -5, nil, tournament.ErrInvalidStake},
		{"over balance", "ana", fixtureAB, tournament.PredictionAway, 501, nil, tournament.ErrInsufficientFunds},
		// participante desconhecido é checado antes do confronto
		{"unknown participant first", "bob", fixtureAB, tournament.PredictionHome, 10, []tournament.Match{decided}, tournament.ErrUnknownParticipant},
		// confronto decidido é checado antes do stake
		{"decided before stake", "ana", fixtureAB, tournament.PredictionHome, 9999, []tournament.Match{decided}, tournament.ErrFixtureAlreadyDecided},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := newState(t, 500)
			st.Matches = tc.matches

			w, err := newTestService().PlaceWager(st, tc.who, tc.key, tc.prediction, tc.stake)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, w)
			assert.Equal(t, int64(500), st.Participants["ana"].Balance)
			assert.Empty(t, st.Wagers)
		})
	}
}

func TestPlaceWager_BalanceNeverNegative(t *testing.T) {
	for _, stake := range []int64{1, 250, 499, 500} {
		st := newState(t, 500)
		_, err := newTestService().PlaceWager(st, "ana", fixtureAB, tournament.PredictionHome, stake)
		require.NoError(t, err)
		assert.Equal(t, 500-stake, st.Participants["ana"].Balance)
		assert.GreaterOrEqual(t, st.Participants["ana"].Balance, int64(0))
	}

	st := newState(t, 500)
	svc := newTestService()
	_, err := svc.PlaceWager(st, "ana", fixtureAB, tournament.PredictionHome, 300)
	require.NoError(t, err)
	_, err = svc.PlaceWager(st, "ana", tournament.FixtureKey{Home: "B", Away: "A", Phase: tournament.PhaseGroups}, tournament.PredictionHome, 300)
	assert.ErrorIs(t, err, tournament.ErrInsufficientFunds)
	assert.Equal(t, int64(200), st.Participants["ana"].Balance)
	assert.Len(t, st.Wagers, 1)
}
