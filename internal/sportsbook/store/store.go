package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/sportsbook/betting"
	"github.com/radieske/league-sportsbook/internal/sportsbook/ledger"
	"github.com/radieske/league-sportsbook/internal/sportsbook/metrics"
	"github.com/radieske/league-sportsbook/internal/sportsbook/repo"
	"github.com/radieske/league-sportsbook/internal/sportsbook/settlement"
	"github.com/radieske/league-sportsbook/internal/tournament"
	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

// Gateway é a persistência do documento do torneio (arquivo, Postgres, Redis, S3)
type Gateway interface {
	Load(ctx context.Context) (*tournament.State, error)
	Save(ctx context.Context, st *tournament.State) error
}

// Notifier recebe os eventos após cada mutação bem-sucedida (Kafka, Redis pub/sub)
type Notifier interface {
	WagerPlaced(ctx context.Context, e events.WagerPlaced) error
	MatchSettled(ctx context.Context, e events.MatchSettled) error
	PhaseAdvanced(ctx context.Context, e events.PhaseAdvanced) error
	TournamentReset(ctx context.Context, e events.TournamentReset) error
}

type Options struct {
	StartingBalance int64
	Groups          []tournament.Group // grupos de um torneio novo / reset
	Notifiers       []Notifier
}

// Store é dono do State e a unidade de lock: uma mutação por vez, leituras
// concorrentes sobre cópias. O save acontece fora do lock, e a versão impede
// que um snapshot antigo sobrescreva um mais novo.
type Store struct {
	log       *zap.Logger
	gw        Gateway
	bets      *betting.Service
	settle    *settlement.Engine
	notifiers []Notifier
	balance   int64
	groups    []tournament.Group
	now       func() time.Time

	mu      sync.RWMutex
	state   *tournament.State
	version uint64

	persistMu sync.Mutex
	persisted uint64
}

// Open carrega o estado do gateway; sem estado salvo, começa do default
func Open(ctx context.Context, log *zap.Logger, gw Gateway, opts Options) (*Store, error) {
	st, err := gw.Load(ctx)
	switch {
	case errors.Is(err, repo.ErrNoState):
		log.Info("no stored state, starting a new tournament")
		st = nil
	case err != nil:
		return nil, fmt.Errorf("load state: %w", err)
	}
	return New(log, gw, st, opts), nil
}

// New cria o store sobre st (nil = torneio novo com opts.Groups)
func New(log *zap.Logger, gw Gateway, st *tournament.State, opts Options) *Store {
	if opts.StartingBalance <= 0 {
		opts.StartingBalance = 1000
	}
	if len(opts.Groups) == 0 {
		opts.Groups = tournament.DefaultGroups()
	}
	if st == nil {
		st = tournament.NewState(opts.Groups)
	}
	return &Store{
		log:       log,
		gw:        gw,
		bets:      betting.NewService(),
		settle:    settlement.NewEngine(),
		notifiers: opts.Notifiers,
		balance:   opts.StartingBalance,
		groups:    opts.Groups,
		now:       time.Now,
		state:     st,
	}
}

// mutate roda fn sob o lock de escrita sobre uma cópia do estado. Se fn falha,
// o estado atual fica intacto; se não, a cópia vira o estado e um snapshot
// versionado é salvo depois de soltar o lock.
func (s *Store) mutate(ctx context.Context, fn func(next *tournament.State) error) error {
	s.mu.Lock()
	next := s.state.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	s.version++
	ver := s.version
	snap := next.Clone()
	s.mu.Unlock()

	return s.persist(ctx, ver, snap)
}

func (s *Store) persist(ctx context.Context, ver uint64, snap *tournament.State) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if ver <= s.persisted {
		return nil
	}

	start := time.Now()
	err := s.gw.Save(ctx, snap)
	if err != nil {
		metrics.PersistDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		s.log.Error("save state", zap.Uint64("version", ver), zap.Error(err))
		return fmt.Errorf("%w: %w", tournament.ErrPersistenceFailure, err)
	}
	metrics.PersistDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	s.persisted = ver
	return nil
}

// Register cria o apostador com o saldo inicial configurado
func (s *Store) Register(ctx context.Context, name tournament.ParticipantID) (tournament.Participant, error) {
	var out tournament.Participant
	err := s.mutate(ctx, func(next *tournament.State) error {
		p, err := ledger.New(next).Register(name, s.balance)
		if err != nil {
			return err
		}
		out = *p
		return nil
	})
	if err != nil && !errors.Is(err, tournament.ErrPersistenceFailure) {
		return tournament.Participant{}, err
	}

	metrics.ParticipantsRegistered.Inc()
	s.log.Info("participant registered", zap.String("participant", string(out.ID)), zap.Int64("balance", out.Balance))
	return out, err
}

// PlaceWager valida e registra a aposta, debitando o stake
func (s *Store) PlaceWager(
	ctx context.Context,
	participant tournament.ParticipantID,
	key tournament.FixtureKey,
	prediction tournament.Prediction,
	stake int64,
) (tournament.Wager, error) {
	var (
		out     tournament.Wager
		balance int64
	)
	err := s.mutate(ctx, func(next *tournament.State) error {
		w, err := s.bets.PlaceWager(next, participant, key, prediction, stake)
		if err != nil {
			return err
		}
		out = *w
		balance = next.Participants[participant].Balance
		return nil
	})
	if err != nil && !errors.Is(err, tournament.ErrPersistenceFailure) {
		metrics.WagersRejected.WithLabelValues(rejectReason(err)).Inc()
		s.log.Info("wager rejected",
			zap.String("participant", string(participant)),
			zap.String("fixture", key.String()),
			zap.Int64("stake", stake),
			zap.Error(err),
		)
		return tournament.Wager{}, err
	}

	metrics.WagersPlaced.WithLabelValues(string(out.Prediction)).Inc()
	metrics.StakeTotal.Add(float64(out.Stake))
	s.log.Info("wager placed",
		zap.String("wager", string(out.ID)),
		zap.String("participant", string(out.Participant)),
		zap.String("fixture", out.Fixture.String()),
		zap.String("prediction", string(out.Prediction)),
		zap.Int64("stake", out.Stake),
		zap.Int64("balance", balance),
	)

	s.notify(ctx, "wager_placed", func(n Notifier) error {
		return n.WagerPlaced(ctx, events.WagerPlaced{
			WagerID:     string(out.ID),
			Participant: string(out.Participant),
			Home:        string(out.Fixture.Home),
			Away:        string(out.Fixture.Away),
			Phase:       string(out.Fixture.Phase),
			Prediction:  string(out.Prediction),
			Stake:       out.Stake,
			Balance:     balance,
			TsUnixMs:    out.PlacedAt.UnixMilli(),
		})
	})
	return out, err
}

// Settlement é o retorno de RecordResult: a partida criada e as apostas liquidadas
type Settlement struct {
	Match   tournament.Match    `json:"match"`
	Results []settlement.Result `json:"results"`
}

// RecordResult cria a partida do confronto e liquida as apostas abertas dele,
// tudo na mesma seção crítica
func (s *Store) RecordResult(ctx context.Context, key tournament.FixtureKey, homeGoals, awayGoals int) (Settlement, error) {
	var out Settlement
	err := s.mutate(ctx, func(next *tournament.State) error {
		if homeGoals < 0 || awayGoals < 0 {
			return fmt.Errorf("%d-%d: %w", homeGoals, awayGoals, tournament.ErrInvalidScore)
		}
		f, ok := tournament.FindFixture(next.Groups, key)
		if !ok {
			return fmt.Errorf("%s: %w", key, tournament.ErrUnknownFixture)
		}
		if tournament.IsDecided(next.Matches, key) {
			return fmt.Errorf("%s: %w", key, tournament.ErrFixtureAlreadyDecided)
		}

		m := tournament.Match{
			Key:       key,
			Group:     f.Group,
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
			PlayedAt:  s.now().UTC(),
		}
		next.Matches = append(next.Matches, m)

		results, err := s.settle.Settle(next, m)
		if err != nil {
			return err
		}
		out = Settlement{Match: m, Results: results}
		return nil
	})
	if err != nil && !errors.Is(err, tournament.ErrPersistenceFailure) {
		return Settlement{}, err
	}

	metrics.MatchesRecorded.WithLabelValues(string(key.Phase)).Inc()
	settled := make([]events.WagerSettlement, 0, len(out.Results))
	for _, r := range out.Results {
		metrics.WagersSettled.WithLabelValues(string(r.Outcome)).Inc()
		metrics.PayoutTotal.Add(float64(r.Payout))
		settled = append(settled, events.WagerSettlement{
			WagerID:     string(r.Wager),
			Participant: string(r.Participant),
			Prediction:  string(r.Prediction),
			Outcome:     string(r.Outcome),
			Stake:       r.Stake,
			Payout:      r.Payout,
			Balance:     r.Balance,
		})
	}
	s.log.Info("match recorded",
		zap.String("fixture", key.String()),
		zap.Int("home_goals", homeGoals),
		zap.Int("away_goals", awayGoals),
		zap.Int("settled", len(out.Results)),
	)

	m := out.Match
	s.notify(ctx, "match_settled", func(n Notifier) error {
		return n.MatchSettled(ctx, events.MatchSettled{
			Group:       string(m.Group),
			Home:        string(m.Key.Home),
			Away:        string(m.Key.Away),
			Phase:       string(m.Key.Phase),
			HomeGoals:   m.HomeGoals,
			AwayGoals:   m.AwayGoals,
			Result:      string(m.Result()),
			Settlements: settled,
			PlayedAt:    m.PlayedAt,
		})
	})
	return out, err
}

// Advance avança a fase se os classificados estão definidos
func (s *Store) Advance(ctx context.Context) (tournament.Phase, []tournament.TeamID, error) {
	var (
		from, to   tournament.Phase
		qualifiers []tournament.TeamID
	)
	err := s.mutate(ctx, func(next *tournament.State) error {
		from = next.Phase
		p, q, err := tournament.Advance(next.Phase, next.Groups, next.Matches)
		if err != nil {
			return err
		}
		next.Phase = p
		next.Qualifiers = q
		to, qualifiers = p, q
		return nil
	})
	if err != nil && !errors.Is(err, tournament.ErrPersistenceFailure) {
		s.log.Warn("advance refused", zap.String("phase", string(from)), zap.Error(err))
		return from, nil, err
	}

	names := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		names[i] = string(q)
	}
	s.log.Info("phase advanced", zap.String("from", string(from)), zap.String("to", string(to)), zap.Strings("qualifiers", names))
	s.notify(ctx, "phase_advanced", func(n Notifier) error {
		return n.PhaseAdvanced(ctx, events.PhaseAdvanced{From: string(from), To: string(to), Qualifiers: names, Ts: s.now().UTC()})
	})
	return to, qualifiers, err
}

// Reset volta ao torneio inicial: grupos default, nada registrado, fase de grupos
func (s *Store) Reset(ctx context.Context) error {
	err := s.mutate(ctx, func(next *tournament.State) error {
		*next = *tournament.NewState(s.groups)
		return nil
	})
	if err != nil && !errors.Is(err, tournament.ErrPersistenceFailure) {
		return err
	}

	// o reset já vale em memória mesmo se o save falhou
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = string(g.Name)
	}
	metrics.TournamentResets.Inc()
	s.log.Warn("tournament reset", zap.Strings("groups", names), zap.Error(err))
	s.notify(ctx, "tournament_reset", func(n Notifier) error {
		return n.TournamentReset(ctx, events.TournamentReset{Groups: names, Ts: s.now().UTC()})
	})
	return err
}

func (s *Store) notify(ctx context.Context, event string, fn func(Notifier) error) {
	for _, n := range s.notifiers {
		if err := fn(n); err != nil {
			metrics.NotifyFailures.WithLabelValues(event).Inc()
			s.log.Warn("notify", zap.String("event", event), zap.Error(err))
		}
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, tournament.ErrUnknownParticipant):
		return "unknown_participant"
	case errors.Is(err, tournament.ErrUnknownFixture):
		return "unknown_fixture"
	case errors.Is(err, tournament.ErrFixtureAlreadyDecided):
		return "fixture_decided"
	case errors.Is(err, tournament.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "invalid"
	}
}
