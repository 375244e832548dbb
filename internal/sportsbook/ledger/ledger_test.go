package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

func TestRegister(t *testing.T) {
	st := tournament.DefaultState()
	l := New(st)

	p, err := l.Register("  ana ", 1000)
	require.NoError(t, err)
	assert.Equal(t, tournament.ParticipantID("ana"), p.ID)
	assert.Equal(t, int64(1000), p.Balance)
	assert.Zero(t, p.Won)
	assert.Zero(t, p.Lost)
	assert.Same(t, p, st.Participants["ana"])

	_, err = l.Register("ana", 500)
	assert.ErrorIs(t, err, tournament.ErrDuplicateParticipant)
	assert.Equal(t, int64(1000), st.Participants["ana"].Balance)

	_, err = l.Register("   ", 1000)
	assert.ErrorIs(t, err, tournament.ErrInvalidParticipant)
}

func TestDebit(t *testing.T) {
	l := New(tournament.DefaultState())
	_, err := l.Register("ana", 1000)
	require.NoError(t, err)

	require.NoError(t, l.Debit("ana", 1000))
	bal, _ := l.Balance("ana")
	assert.Zero(t, bal)

	err = l.Debit("ana", 1)
	assert.ErrorIs(t, err, tournament.ErrInsufficientFunds)
	bal, _ = l.Balance("ana")
	assert.Zero(t, bal)

	assert.ErrorIs(t, l.Debit("ana", 0), tournament.ErrInvalidAmount)
	assert.ErrorIs(t, l.Debit("bob", 10), tournament.ErrUnknownParticipant)
}

func TestCreditAndCounters(t *testing.T) {
	l := New(tournament.DefaultState())
	_, err := l.Register("ana", 0)
	require.NoError(t, err)

	require.NoError(t, l.Credit("ana", 200))
	require.NoError(t, l.RecordWin("ana"))
	require.NoError(t, l.RecordLoss("ana"))
	require.NoError(t, l.RecordLoss("ana"))

	bal, err := l.Balance("ana")
	require.NoError(t, err)
	assert.Equal(t, int64(200), bal)

	assert.ErrorIs(t, l.Credit("ana", -5), tournament.ErrInvalidAmount)
	assert.ErrorIs(t, l.RecordWin("bob"), tournament.ErrUnknownParticipant)
	assert.True(t, l.Exists("ana"))
	assert.False(t, l.Exists("bob"))
}
