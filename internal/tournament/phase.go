package tournament

import "fmt"

// QualifiersPerGroup é quantos times de cada grupo avançam às semifinais
const QualifiersPerGroup = 2

// Qualifiers retorna os dois primeiros de cada grupo, na ordem dos grupos
// (1º A, 2º A, 1º B, 2º B). Falha se algum grupo não fornece 2 times distintos.
func Qualifiers(groups []Group, matches []Match) ([]TeamID, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no groups configured: %w", ErrInsufficientQualifiers)
	}
	out := make([]TeamID, 0, QualifiersPerGroup*len(groups))
	seen := make(map[TeamID]struct{})
	for _, g := range groups {
		table := Standings(g, matches)
		if len(table) < QualifiersPerGroup {
			return nil, fmt.Errorf("group %q has %d teams: %w", g.Name, len(table), ErrInsufficientQualifiers)
		}
		for _, row := range table[:QualifiersPerGroup] {
			if _, dup := seen[row.Team]; dup {
				return nil, fmt.Errorf("team %q qualified twice: %w", row.Team, ErrInsufficientQualifiers)
			}
			seen[row.Team] = struct{}{}
			out = append(out, row.Team)
		}
	}
	if len(out) != QualifiersPerGroup*len(groups) {
		return nil, fmt.Errorf("got %d qualifiers: %w", len(out), ErrInsufficientQualifiers)
	}
	return out, nil
}

// Advance aplica a transição de fase. Só groups → semifinals está definida;
// as fases eliminatórias seguintes ainda não são geradas.
func Advance(current Phase, groups []Group, matches []Match) (Phase, []TeamID, error) {
	switch current {
	case PhaseGroups:
		q, err := Qualifiers(groups, matches)
		if err != nil {
			return current, nil, err
		}
		next, _ := current.Next()
		return next, q, nil
	case PhaseSemifinals, PhaseFinal:
		next, _ := current.Next()
		return current, nil, fmt.Errorf("%s → %s: %w", current, next, ErrTransitionNotSupported)
	case PhaseThirdPlace:
		return current, nil, ErrTerminalPhase
	default:
		return current, nil, fmt.Errorf("unknown phase %q: %w", current, ErrTransitionNotSupported)
	}
}
