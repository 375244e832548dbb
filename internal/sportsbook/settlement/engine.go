package settlement

import (
	"fmt"
	"time"

	"github.com/radieske/league-sportsbook/internal/sportsbook/ledger"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

// PayoutMultiplier é fixo: acertou, recebe 2× o stake
const PayoutMultiplier = 2

// Result descreve a liquidação de uma aposta
type Result struct {
	Wager       tournament.WagerID       `json:"wager_id"`
	Participant tournament.ParticipantID `json:"participant"`
	Prediction  tournament.Prediction    `json:"prediction"`
	Outcome     tournament.Outcome       `json:"outcome"`
	Stake       int64                    `json:"stake"`
	Payout      int64                    `json:"payout"`
	Balance     int64                    `json:"balance"`
}

// Engine liquida as apostas abertas de uma partida
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine { return &Engine{now: time.Now} }

// Settle liquida toda aposta com a mesma chave (mandante, visitante, fase) e
// Settled=false. Apostas já liquidadas nunca são tocadas, então uma segunda
// chamada para a mesma partida não altera o ledger.
func (e *Engine) Settle(st *tournament.State, m tournament.Match) ([]Result, error) {
	led := ledger.New(st)
	actual := m.Result()
	at := e.now().UTC()

	results := make([]Result, 0)
	for _, w := range st.Wagers {
		if w.Settled || w.Fixture != m.Key {
			continue
		}

		outcome := tournament.OutcomeLost
		var payout int64
		if w.Prediction == actual {
			outcome = tournament.OutcomeWon
			payout = w.Stake * PayoutMultiplier
			if err := led.Credit(w.Participant, payout); err != nil {
				return results, fmt.Errorf("settle wager %s: %w", w.ID, err)
			}
			if err := led.RecordWin(w.Participant); err != nil {
				return results, fmt.Errorf("settle wager %s: %w", w.ID, err)
			}
		} else if err := led.RecordLoss(w.Participant); err != nil {
			return results, fmt.Errorf("settle wager %s: %w", w.ID, err)
		}

		w.Settled = true
		w.Outcome = &outcome
		w.Payout = payout
		w.SettledAt = &at

		bal, _ := led.Balance(w.Participant)
		results = append(results, Result{
			Wager:       w.ID,
			Participant: w.Participant,
			Prediction:  w.Prediction,
			Outcome:     outcome,
			Stake:       w.Stake,
			Payout:      payout,
			Balance:     bal,
		})
	}
	return results, nil
}
