package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/league-sportsbook/internal/sportsbook/ledger"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

var keyAB = tournament.FixtureKey{Home: "A", Away: "B", Phase: tournament.PhaseGroups}

func setup(t *testing.T, prediction tournament.Prediction) *tournament.State {
	t.Helper()
	st := tournament.NewState([]tournament.Group{{Name: "G", Teams: []tournament.TeamID{"A", "B"}}})
	led := ledger.New(st)
	_, err := led.Register("P", 1000)
	require.NoError(t, err)
	require.NoError(t, led.Debit("P", 100))
	st.Wagers = append(st.Wagers, &tournament.Wager{ID: "w1", Participant: "P", Fixture: keyAB, Prediction: prediction, Stake: 100})
	return st
}

func match(hg, ag int) tournament.Match {
	return tournament.Match{Key: keyAB, Group: "G", HomeGoals: hg, AwayGoals: ag}
}

func newTestEngine() *Engine {
	return &Engine{now: func() time.Time { return time.Date(2026, 6, 1, 22, 0, 0, 0, time.UTC) }}
}

func TestSettle_WinningWager(t *testing.T) {
	st := setup(t, tournament.PredictionHome)
	require.Equal(t, int64(900), st.Participants["P"].Balance)

	res, err := newTestEngine().Settle(st, match(2, 1))
	require.NoError(t, err)
	require.Len(t, res, 1)

	assert.Equal(t, tournament.OutcomeWon, res[0].Outcome)
	assert.Equal(t, int64(200), res[0].Payout)
	assert.Equal(t, int64(1100), res[0].Balance)

	p := st.Participants["P"]
	assert.Equal(t, int64(1100), p.Balance)
	assert.Equal(t, 1, p.Won)
	assert.Zero(t, p.Lost)

	w := st.Wagers[0]
	assert.True(t, w.Settled)
	assert.Equal(t, tournament.OutcomeWon, *w.Outcome)
	assert.Equal(t, int64(200), w.Payout)
	require.NotNil(t, w.SettledAt)
}

func TestSettle_LosingWager(t *testing.T) {
	st := setup(t, tournament.PredictionAway)

	res, err := newTestEngine().Settle(st, match(2, 1))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, tournament.OutcomeLost, res[0].Outcome)
	assert.Zero(t, res[0].Payout)

	p := st.Participants["P"]
	assert.Equal(t, int64(900), p.Balance)
	assert.Equal(t, 1, p.Lost)
	assert.Zero(t, p.Won)
	assert.True(t, st.Wagers[0].Settled)
}

func TestSettle_Draw(t *testing.T) {
	st := setup(t, tournament.PredictionDraw)
	res, err := newTestEngine().Settle(st, match(1, 1))
	require.NoError(t, err)
	assert.Equal(t, tournament.OutcomeWon, res[0].Outcome)
	assert.Equal(t, int64(1100), st.Participants["P"].Balance)
}

func TestSettle_IsIdempotent(t *testing.T) {
	st := setup(t, tournament.PredictionHome)
	e := newTestEngine()

	_, err := e.Settle(st, match(2, 1))
	require.NoError(t, err)
	before := *st.Participants["P"]

	res, err := e.Settle(st, match(2, 1))
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Equal(t, before, *st.Participants["P"])
}

func TestSettle_OnlyMatchingKey(t *testing.T) {
	st := setup(t, tournament.PredictionHome)
	reverse := tournament.FixtureKey{Home: "B", Away: "A", Phase: tournament.PhaseGroups}
	otherPhase := tournament.FixtureKey{Home: "A", Away: "B", Phase: tournament.PhaseSemifinals}
	st.Wagers = append(st.Wagers,
		&tournament.Wager{ID: "w2", Participant: "P", Fixture: reverse, Prediction: tournament.PredictionHome, Stake: 50},
		&tournament.Wager{ID: "w3", Participant: "P", Fixture: otherPhase, Prediction: tournament.PredictionHome, Stake: 50},
	)

	res, err := newTestEngine().Settle(st, match(3, 0))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, tournament.WagerID("w1"), res[0].Wager)
	assert.False(t, st.Wagers[1].Settled)
	assert.False(t, st.Wagers[2].Settled, "same teams in another phase must not settle")
}

func TestSettle_SeveralParticipants(t *testing.T) {
	st := setup(t, tournament.PredictionHome)
	led := ledger.New(st)
	_, err := led.Register("Q", 1000)
	require.NoError(t, err)
	require.NoError(t, led.Debit("Q", 300))
	st.Wagers = append(st.Wagers, &tournament.Wager{ID: "w2", Participant: "Q", Fixture: keyAB, Prediction: tournament.PredictionDraw, Stake: 300})

	res, err := newTestEngine().Settle(st, match(0, 0))
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, int64(900), st.Participants["P"].Balance)
	assert.Equal(t, int64(1300), st.Participants["Q"].Balance)
	assert.Equal(t, 1, st.Participants["P"].Lost)
	assert.Equal(t, 1, st.Participants["Q"].Won)
}
