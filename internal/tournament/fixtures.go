package tournament

// AllFixtures gera o turno e returno de cada grupo: todos os pares ordenados
// (mandante ≠ visitante), n·(n−1) por grupo, na ordem dos grupos e dos times.
func AllFixtures(groups []Group) []Fixture {
	out := make([]Fixture, 0)
	for _, g := range groups {
		for i, home := range g.Teams {
			for j, away := range g.Teams {
				if i == j {
					continue
				}
				out = append(out, Fixture{
					Key:   FixtureKey{Home: home, Away: away, Phase: PhaseGroups},
					Group: g.Name,
				})
			}
		}
	}
	return out
}

// PendingFixtures retorna os confrontos de grupo que ainda não têm partida registrada.
// Função pura: recalcula a partir do histórico a cada chamada.
func PendingFixtures(groups []Group, matches []Match) []Fixture {
	decided := make(map[FixtureKey]struct{}, len(matches))
	for _, m := range matches {
		decided[m.Key] = struct{}{}
	}

	out := make([]Fixture, 0)
	for _, f := range AllFixtures(groups) {
		if _, ok := decided[f.Key]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FindFixture procura o confronto pela chave entre todos os confrontos dos grupos
func FindFixture(groups []Group, key FixtureKey) (Fixture, bool) {
	if key.Phase != PhaseGroups || key.Home == key.Away {
		return Fixture{}, false
	}
	for _, g := range groups {
		if g.Has(key.Home) && g.Has(key.Away) {
			return Fixture{Key: key, Group: g.Name}, true
		}
	}
	return Fixture{}, false
}

// IsDecided indica se já existe partida para a chave
func IsDecided(matches []Match, key FixtureKey) bool {
	for _, m := range matches {
		if m.Key == key {
			return true
		}
	}
	return false
}
