package tournament

import (
	"fmt"
	"time"
)

// TeamID identifica um time pelo nome
type TeamID string

// GroupName identifica um grupo ("Grupo A", "Grupo B", ...)
type GroupName string

// ParticipantID identifica um apostador pelo nome registrado
type ParticipantID string

// WagerID identifica uma aposta (uuid)
type WagerID string

// Phase representa a fase do torneio
type Phase string

const (
	PhaseGroups     Phase = "groups"
	PhaseSemifinals Phase = "semifinals"
	PhaseFinal      Phase = "final"
	PhaseThirdPlace Phase = "third_place"
)

// Valid indica se a fase é uma das fases conhecidas
func (p Phase) Valid() bool {
	switch p {
	case PhaseGroups, PhaseSemifinals, PhaseFinal, PhaseThirdPlace:
		return true
	}
	return false
}

// Next retorna a fase seguinte na ordem groups → semifinals → final → third_place.
// A última fase não tem sucessora.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhaseGroups:
		return PhaseSemifinals, true
	case PhaseSemifinals:
		return PhaseFinal, true
	case PhaseFinal:
		return PhaseThirdPlace, true
	}
	return "", false
}

// Prediction é o palpite de uma aposta: mandante, empate ou visitante
type Prediction string

const (
	PredictionHome Prediction = "home"
	PredictionDraw Prediction = "draw"
	PredictionAway Prediction = "away"
)

func (p Prediction) Valid() bool {
	return p == PredictionHome || p == PredictionDraw || p == PredictionAway
}

// Outcome é o resultado de uma aposta liquidada
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// Group é um conjunto nomeado de times; a ordem de Teams é significativa
type Group struct {
	Name  GroupName `json:"name"`
	Teams []TeamID  `json:"teams"`
}

// Has indica se o time pertence ao grupo
func (g Group) Has(t TeamID) bool {
	for _, m := range g.Teams {
		if m == t {
			return true
		}
	}
	return false
}

// FixtureKey identifica um confronto por (mandante, visitante, fase).
// É comparável e usado em todas as buscas; String() serve só para exibição.
type FixtureKey struct {
	Home  TeamID `json:"home"`
	Away  TeamID `json:"away"`
	Phase Phase  `json:"phase"`
}

func (k FixtureKey) String() string {
	return fmt.Sprintf("%s vs %s (%s)", k.Home, k.Away, k.Phase)
}

// Fixture é um confronto ainda sem resultado
type Fixture struct {
	Key   FixtureKey `json:"key"`
	Group GroupName  `json:"group"`
}

// Match é o resultado registrado de um Fixture. Imutável.
type Match struct {
	Key       FixtureKey `json:"key"`
	Group     GroupName  `json:"group"`
	HomeGoals int        `json:"home_goals"`
	AwayGoals int        `json:"away_goals"`
	PlayedAt  time.Time  `json:"played_at"`
}

// Result deriva o resultado real do placar
func (m Match) Result() Prediction {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return PredictionHome
	case m.AwayGoals > m.HomeGoals:
		return PredictionAway
	default:
		return PredictionDraw
	}
}

// StandingsRow é uma linha da tabela de classificação (derivada, nunca persistida)
type StandingsRow struct {
	Team         TeamID `json:"team"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// Participant é um apostador com saldo e contadores de apostas
type Participant struct {
	ID           ParticipantID `json:"id"`
	Balance      int64         `json:"balance"`
	Won          int           `json:"won"`
	Lost         int           `json:"lost"`
	RegisteredAt time.Time     `json:"registered_at"`
}

// Wager é uma aposta. Stake e Prediction nunca mudam; Settled vira true uma única vez.
type Wager struct {
	ID          WagerID       `json:"id"`
	Participant ParticipantID `json:"participant"`
	Fixture     FixtureKey    `json:"fixture"`
	Prediction  Prediction    `json:"prediction"`
	Stake       int64         `json:"stake"`
	Settled     bool          `json:"settled"`
	Outcome     *Outcome      `json:"outcome,omitempty"`
	Payout      int64         `json:"payout"`
	PlacedAt    time.Time     `json:"placed_at"`
	SettledAt   *time.Time    `json:"settled_at,omitempty"`
}

func (w *Wager) clone() *Wager {
	c := *w
	if w.Outcome != nil {
		o := *w.Outcome
		c.Outcome = &o
	}
	if w.SettledAt != nil {
		t := *w.SettledAt
		c.SettledAt = &t
	}
	return &c
}
