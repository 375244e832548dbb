package betting

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/league-sportsbook/internal/sportsbook/ledger"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

// Service valida e registra apostas novas
type Service struct {
	now   func() time.Time
	newID func() string
}

// NewService retorna o serviço de apostas com relógio e gerador de id padrão
func NewService() *Service {
	return &Service{now: time.Now, newID: uuid.NewString}
}

// PlaceWager valida na ordem: apostador existe, confronto conhecido e ainda
// sem resultado (recalculado agora, nunca em cache), palpite válido, stake
// positivo e stake ≤ saldo. Só então debita e anexa a aposta. Em caso de
// erro o estado fica intacto.
func (s *Service) PlaceWager(
	st *tournament.State,
	participant tournament.ParticipantID,
	key tournament.FixtureKey,
	prediction tournament.Prediction,
	stake int64,
) (*tournament.Wager, error) {
	led := ledger.New(st)

	balance, err := led.Balance(participant)
	if err != nil {
		return nil, err
	}

	if _, ok := tournament.FindFixture(st.Groups, key); !ok {
		return nil, fmt.Errorf("%s: %w", key, tournament.ErrUnknownFixture)
	}
	if tournament.IsDecided(st.Matches, key) {
		return nil, fmt.Errorf("%s: %w", key, tournament.ErrFixtureAlreadyDecided)
	}

	if !prediction.Valid() {
		return nil, fmt.Errorf("%q: %w", prediction, tournament.ErrInvalidPrediction)
	}
	if stake <= 0 {
		return nil, fmt.Errorf("stake %d: %w", stake, tournament.ErrInvalidStake)
	}
	if stake > balance {
		return nil, fmt.Errorf("stake %d, balance %d: %w", stake, balance, tournament.ErrInsufficientFunds)
	}

	if err := led.Debit(participant, stake); err != nil {
		return nil, err
	}

	w := &tournament.Wager{
		ID:          tournament.WagerID(s.newID()),
		Participant: participant,
		Fixture:     key,
		Prediction:  prediction,
		Stake:       stake,
		PlacedAt:    s.now().UTC(),
	}
	st.Wagers = append(st.Wagers, w)
	return w, nil
}
