package events

import "time"

// Liquidação de uma aposta dentro de MatchSettled
type WagerSettlement struct {
	WagerID     string `json:"wager_id"`
	Participant string `json:"participant"`
	Prediction  string `json:"prediction"`
	Outcome     string `json:"outcome"` // "won" | "lost"
	Stake       int64  `json:"stake"`
	Payout      int64  `json:"payout"`
	Balance     int64  `json:"balance"`
}

// Evento emitido quando um resultado é registrado e as apostas liquidadas.
// Também é o payload do broadcast via Redis para o WS.
type MatchSettled struct {
	Group       string            `json:"group"`
	Home        string            `json:"home"`
	Away        string            `json:"away"`
	Phase       string            `json:"phase"`
	HomeGoals   int               `json:"home_goals"`
	AwayGoals   int               `json:"away_goals"`
	Result      string            `json:"result"` // "home" | "draw" | "away"
	Settlements []WagerSettlement `json:"settlements"`
	PlayedAt    time.Time         `json:"played_at"`
}
