package tournament

import "sort"

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Standings calcula a tabela do grupo a partir das partidas da fase de grupos.
// Ordena por pontos, saldo de gols e gols pró (todos desc); empates restantes
// mantêm a ordem dos times no grupo.
func Standings(group Group, matches []Match) []StandingsRow {
	rows := make([]StandingsRow, len(group.Teams))
	index := make(map[TeamID]*StandingsRow, len(group.Teams))
	for i, t := range group.Teams {
		rows[i] = StandingsRow{Team: t}
		index[t] = &rows[i]
	}

	for _, m := range matches {
		if m.Group != group.Name || m.Key.Phase != PhaseGroups {
			continue
		}
		home, away := index[m.Key.Home], index[m.Key.Away]
		if home == nil || away == nil {
			continue
		}
		home.apply(m.HomeGoals, m.AwayGoals)
		away.apply(m.AwayGoals, m.HomeGoals)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		return a.GoalsFor > b.GoalsFor
	})
	return rows
}

func (r *StandingsRow) apply(scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	r.GoalDiff = r.GoalsFor - r.GoalsAgainst
	switch {
	case scored > conceded:
		r.Won++
		r.Points += pointsWin
	case scored < conceded:
		r.Lost++
	default:
		r.Drawn++
		r.Points += pointsDraw
	}
}

// AllStandings calcula a tabela de cada grupo, na ordem dos grupos
func AllStandings(groups []Group, matches []Match) map[GroupName][]StandingsRow {
	out := make(map[GroupName][]StandingsRow, len(groups))
	for _, g := range groups {
		out[g.Name] = Standings(g, matches)
	}
	return out
}
