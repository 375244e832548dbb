package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_FromGroups(t *testing.T) {
	groups := []Group{groupOf("A", "a1", "a2", "a3"), groupOf("B", "b1", "b2", "b3")}
	matches := []Match{
		played("A", "a3", "a1", 2, 0),
		played("A", "a2", "a1", 1, 0),
		played("B", "b2", "b3", 0, 1),
	}

	next, q, err := Advance(PhaseGroups, groups, matches)
	require.NoError(t, err)
	assert.Equal(t, PhaseSemifinals, next)
	assert.Equal(t, []TeamID{"a3", "a2", "b3", "b1"}, q)
}

func TestAdvance_InsufficientQualifiers(t *testing.T) {
	groups := []Group{groupOf("A", "a1", "a2"), groupOf("B", "b1")}

	next, q, err := Advance(PhaseGroups, groups, nil)
	require.ErrorIs(t, err, ErrInsufficientQualifiers)
	assert.Equal(t, PhaseGroups, next)
	assert.Nil(t, q)
}

func TestAdvance_NoGroups(t *testing.T) {
	_, _, err := Advance(PhaseGroups, nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientQualifiers)
}

func TestAdvance_LaterPhases(t *testing.T) {
	groups := DefaultGroups()

	for _, p := range []Phase{PhaseSemifinals, PhaseFinal} {
		next, _, err := Advance(p, groups, nil)
		assert.ErrorIs(t, err, ErrTransitionNotSupported, p)
		assert.Equal(t, p, next)
	}

	next, _, err := Advance(PhaseThirdPlace, groups, nil)
	assert.ErrorIs(t, err, ErrTerminalPhase)
	assert.Equal(t, PhaseThirdPlace, next)
}

func TestPhaseNext(t *testing.T) {
	order := []Phase{PhaseGroups, PhaseSemifinals, PhaseFinal, PhaseThirdPlace}
	for i := 0; i < len(order)-1; i++ {
		next, ok := order[i].Next()
		require.True(t, ok)
		assert.Equal(t, order[i+1], next)
	}
	_, ok := PhaseThirdPlace.Next()
	assert.False(t, ok)
	assert.False(t, Phase("quarterfinals").Valid())
}
