package store

import (
	"fmt"
	"sort"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

// Leituras: lock de leitura, recálculo a partir do histórico e retorno de cópias.

// PendingFixtures retorna os confrontos sem resultado; limit <= 0 retorna todos
func (s *Store) PendingFixtures(limit int) []tournament.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := tournament.PendingFixtures(s.state.Groups, s.state.Matches)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Standings retorna a tabela de um grupo
func (s *Store) Standings(group tournament.GroupName) ([]tournament.StandingsRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.state.Group(group)
	if !ok {
		return nil, fmt.Errorf("%q: %w", group, tournament.ErrUnknownGroup)
	}
	return tournament.Standings(g, s.state.Matches), nil
}

type GroupStandings struct {
	Group tournament.GroupName      `json:"group"`
	Rows  []tournament.StandingsRow `json:"rows"`
}

// AllStandings retorna a tabela de todos os grupos, na ordem configurada
func (s *Store) AllStandings() []GroupStandings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]GroupStandings, 0, len(s.state.Groups))
	for _, g := range s.state.Groups {
		out = append(out, GroupStandings{Group: g.Name, Rows: tournament.Standings(g, s.state.Matches)})
	}
	return out
}

type LeaderboardEntry struct {
	Participant tournament.ParticipantID `json:"participant"`
	Balance     int64                    `json:"balance"`
	Won         int                      `json:"won"`
	Lost        int                      `json:"lost"`
	Net         int                      `json:"net"` // ganhas − perdidas
}

// Leaderboard ordena os apostadores por saldo (desc); empate por nome
func (s *Store) Leaderboard() []LeaderboardEntry {
	s.mu.RLock()
	out := make([]LeaderboardEntry, 0, len(s.state.Participants))
	for _, p := range s.state.Participants {
		out = append(out, LeaderboardEntry{
			Participant: p.ID,
			Balance:     p.Balance,
			Won:         p.Won,
			Lost:        p.Lost,
			Net:         p.Won - p.Lost,
		})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance != out[j].Balance {
			return out[i].Balance > out[j].Balance
		}
		return out[i].Participant < out[j].Participant
	})
	return out
}

type WagerHistory struct {
	Participant tournament.Participant `json:"participant"`
	Won         int                    `json:"won"`
	Lost        int                    `json:"lost"`
	Pending     int                    `json:"pending"`
	Wagers      []tournament.Wager     `json:"wagers"` // mais recente primeiro
}

// Wagers retorna o histórico de apostas de um apostador
func (s *Store) Wagers(participant tournament.ParticipantID) (WagerHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.Participants[participant]
	if !ok {
		return WagerHistory{}, fmt.Errorf("%q: %w", participant, tournament.ErrUnknownParticipant)
	}

	h := WagerHistory{Participant: *p, Wagers: []tournament.Wager{}}
	for i := len(s.state.Wagers) - 1; i >= 0; i-- {
		w := s.state.Wagers[i]
		if w.Participant != participant {
			continue
		}
		switch {
		case !w.Settled:
			h.Pending++
		case w.Outcome != nil && *w.Outcome == tournament.OutcomeWon:
			h.Won++
		default:
			h.Lost++
		}
		h.Wagers = append(h.Wagers, *w)
	}
	return h, nil
}

type Summary struct {
	Phase        tournament.Phase    `json:"phase"`
	Qualifiers   []tournament.TeamID `json:"qualifiers"`
	Groups       []tournament.Group  `json:"groups"`
	Participants int                 `json:"participants"`
	Matches      int                 `json:"matches"`
	Pending      int                 `json:"pending_fixtures"`
	OpenWagers   int                 `json:"open_wagers"`
}

// Summary resume o torneio para a tela principal
func (s *Store) Summary() Summary {
	snap := s.Snapshot()
	open := 0
	for _, w := range snap.Wagers {
		if !w.Settled {
			open++
		}
	}
	q := snap.Qualifiers
	if q == nil {
		q = []tournament.TeamID{}
	}
	return Summary{
		Phase:        snap.Phase,
		Qualifiers:   q,
		Groups:       snap.Groups,
		Participants: len(snap.Participants),
		Matches:      len(snap.Matches),
		Pending:      len(tournament.PendingFixtures(snap.Groups, snap.Matches)),
		OpenWagers:   open,
	}
}

// Snapshot retorna uma cópia profunda do estado atual
func (s *Store) Snapshot() *tournament.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
