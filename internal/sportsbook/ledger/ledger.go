package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

// Ledger é o único componente que altera saldo e contadores dos apostadores.
// Opera sobre o State recebido; quem chama deve segurar o lock do store.
type Ledger struct {
	accounts map[tournament.ParticipantID]*tournament.Participant
	now      func() time.Time
}

// New cria um ledger sobre os apostadores do estado
func New(st *tournament.State) *Ledger {
	if st.Participants == nil {
		st.Participants = make(map[tournament.ParticipantID]*tournament.Participant)
	}
	return &Ledger{accounts: st.Participants, now: time.Now}
}

// Register cria a conta com saldo inicial e contadores zerados
func (l *Ledger) Register(id tournament.ParticipantID, startingBalance int64) (*tournament.Participant, error) {
	id = tournament.ParticipantID(strings.TrimSpace(string(id)))
	if id == "" {
		return nil, tournament.ErrInvalidParticipant
	}
	if startingBalance < 0 {
		return nil, fmt.Errorf("starting balance %d: %w", startingBalance, tournament.ErrInvalidAmount)
	}
	if _, ok := l.accounts[id]; ok {
		return nil, fmt.Errorf("%q: %w", id, tournament.ErrDuplicateParticipant)
	}
	p := &tournament.Participant{ID: id, Balance: startingBalance, RegisteredAt: l.now().UTC()}
	l.accounts[id] = p
	return p, nil
}

// Debit retira amount do saldo; nunca deixa o saldo negativo
func (l *Ledger) Debit(id tournament.ParticipantID, amount int64) error {
	p, err := l.account(id)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("debit %d: %w", amount, tournament.ErrInvalidAmount)
	}
	if amount > p.Balance {
		return fmt.Errorf("%q has %d, needs %d: %w", id, p.Balance, amount, tournament.ErrInsufficientFunds)
	}
	p.Balance -= amount
	return nil
}

// Credit adiciona amount ao saldo
func (l *Ledger) Credit(id tournament.ParticipantID, amount int64) error {
	p, err := l.account(id)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("credit %d: %w", amount, tournament.ErrInvalidAmount)
	}
	p.Balance += amount
	return nil
}

func (l *Ledger) RecordWin(id tournament.ParticipantID) error {
	p, err := l.account(id)
	if err != nil {
		return err
	}
	p.Won++
	return nil
}

func (l *Ledger) RecordLoss(id tournament.ParticipantID) error {
	p, err := l.account(id)
	if err != nil {
		return err
	}
	p.Lost++
	return nil
}

// Balance retorna o saldo atual
func (l *Ledger) Balance(id tournament.ParticipantID) (int64, error) {
	p, err := l.account(id)
	if err != nil {
		return 0, err
	}
	return p.Balance, nil
}

// Exists indica se o apostador está registrado
func (l *Ledger) Exists(id tournament.ParticipantID) bool {
	_, ok := l.accounts[id]
	return ok
}

func (l *Ledger) account(id tournament.ParticipantID) (*tournament.Participant, error) {
	p, ok := l.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, tournament.ErrUnknownParticipant)
	}
	return p, nil
}
