package tournament

import (
	"encoding/json"
	"fmt"
)

// State é o documento completo do torneio: grupos, apostadores, partidas, apostas e fase.
// Não é seguro para uso concorrente; o store é quem serializa o acesso.
type State struct {
	Groups       []Group
	Participants map[ParticipantID]*Participant
	Matches      []Match
	Wagers       []*Wager
	Phase        Phase
	Qualifiers   []TeamID
}

// DefaultGroups são os grupos usados em um torneio novo ou após reset
func DefaultGroups() []Group {
	return []Group{
		{Name: "Grupo A", Teams: []TeamID{"Liverpool", "Bayern Munich", "Atlético Nacional", "Barcelona"}},
		{Name: "Grupo B", Teams: []TeamID{"Real Madrid", "AC Milan", "Independiente Medellín", "Paris SG"}},
	}
}

// NewState cria um estado vazio na fase de grupos
func NewState(groups []Group) *State {
	return &State{
		Groups:       cloneGroups(groups),
		Participants: make(map[ParticipantID]*Participant),
		Matches:      []Match{},
		Wagers:       []*Wager{},
		Phase:        PhaseGroups,
	}
}

// DefaultState é o estado inicial: dois grupos de quatro, sem partidas, apostas ou apostadores
func DefaultState() *State { return NewState(DefaultGroups()) }

// Group retorna o grupo pelo nome
func (s *State) Group(name GroupName) (Group, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Clone retorna uma cópia profunda, usada para leituras fora do lock e para persistir
func (s *State) Clone() *State {
	c := &State{
		Groups:       cloneGroups(s.Groups),
		Participants: make(map[ParticipantID]*Participant, len(s.Participants)),
		Matches:      append([]Match(nil), s.Matches...),
		Wagers:       make([]*Wager, 0, len(s.Wagers)),
		Phase:        s.Phase,
		Qualifiers:   append([]TeamID(nil), s.Qualifiers...),
	}
	for id, p := range s.Participants {
		cp := *p
		c.Participants[id] = &cp
	}
	for _, w := range s.Wagers {
		c.Wagers = append(c.Wagers, w.clone())
	}
	return c
}

// Validate checa a consistência de um estado carregado do storage
func (s *State) Validate() error {
	if !s.Phase.Valid() {
		return fmt.Errorf("invalid phase %q", s.Phase)
	}
	seen := make(map[TeamID]GroupName)
	for _, g := range s.Groups {
		if len(g.Teams) < 2 {
			return fmt.Errorf("group %q: needs at least 2 teams, has %d", g.Name, len(g.Teams))
		}
		for _, t := range g.Teams {
			if other, dup := seen[t]; dup {
				return fmt.Errorf("team %q belongs to %q and %q", t, other, g.Name)
			}
			seen[t] = g.Name
		}
	}
	for id, p := range s.Participants {
		if p.Balance < 0 {
			return fmt.Errorf("participant %q: negative balance %d", id, p.Balance)
		}
	}
	played := make(map[FixtureKey]struct{}, len(s.Matches))
	for _, m := range s.Matches {
		if _, ok := FindFixture(s.Groups, m.Key); !ok {
			return fmt.Errorf("match %s x %s: %w", m.Key.Home, m.Key.Away, ErrUnknownFixture)
		}
		if _, dup := played[m.Key]; dup {
			return fmt.Errorf("match %s x %s recorded twice", m.Key.Home, m.Key.Away)
		}
		played[m.Key] = struct{}{}
	}
	ids := make(map[WagerID]struct{}, len(s.Wagers))
	for i, w := range s.Wagers {
		if w == nil {
			return fmt.Errorf("wager #%d is null", i)
		}
		if _, dup := ids[w.ID]; dup || w.ID == "" {
			return fmt.Errorf("wager #%d: missing or duplicate id %q", i, w.ID)
		}
		ids[w.ID] = struct{}{}
		if _, ok := s.Participants[w.Participant]; !ok {
			return fmt.Errorf("wager %q: %w %q", w.ID, ErrUnknownParticipant, w.Participant)
		}
		if _, ok := FindFixture(s.Groups, w.Fixture); !ok {
			return fmt.Errorf("wager %q: %w", w.ID, ErrUnknownFixture)
		}
	}
	return nil
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Name: g.Name, Teams: append([]TeamID(nil), g.Teams...)}
	}
	return out
}

// stateDocument é o formato persistido. Os grupos ficam como mapa nome → times
// mais uma lista com a ordem, já que a ordem define fixtures e desempates.
type stateDocument struct {
	Groups       map[GroupName][]TeamID        `json:"groups"`
	GroupOrder   []GroupName                   `json:"group_order"`
	Participants map[ParticipantID]Participant `json:"participants"`
	Matches      []Match                       `json:"matches"`
	Wagers       []*Wager                      `json:"wagers"`
	Phase        Phase                         `json:"phase"`
	Qualifiers   []TeamID                      `json:"qualifiers,omitempty"`
}

func (s *State) MarshalJSON() ([]byte, error) {
	doc := stateDocument{
		Groups:       make(map[GroupName][]TeamID, len(s.Groups)),
		GroupOrder:   make([]GroupName, 0, len(s.Groups)),
		Participants: make(map[ParticipantID]Participant, len(s.Participants)),
		Matches:      s.Matches,
		Wagers:       s.Wagers,
		Phase:        s.Phase,
		Qualifiers:   s.Qualifiers,
	}
	for _, g := range s.Groups {
		doc.Groups[g.Name] = g.Teams
		doc.GroupOrder = append(doc.GroupOrder, g.Name)
	}
	for id, p := range s.Participants {
		doc.Participants[id] = *p
	}
	if doc.Matches == nil {
		doc.Matches = []Match{}
	}
	if doc.Wagers == nil {
		doc.Wagers = []*Wager{}
	}
	return json.Marshal(doc)
}

func (s *State) UnmarshalJSON(b []byte) error {
	var doc stateDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	order := doc.GroupOrder
	if len(order) != len(doc.Groups) {
		return fmt.Errorf("group_order lists %d groups, document has %d", len(order), len(doc.Groups))
	}

	st := NewState(nil)
	for _, name := range order {
		teams, ok := doc.Groups[name]
		if !ok {
			return fmt.Errorf("group_order references unknown group %q", name)
		}
		st.Groups = append(st.Groups, Group{Name: name, Teams: teams})
	}
	for id, p := range doc.Participants {
		p := p
		p.ID = id
		st.Participants[id] = &p
	}
	if doc.Matches != nil {
		st.Matches = doc.Matches
	}
	if doc.Wagers != nil {
		st.Wagers = doc.Wagers
	}
	st.Phase = doc.Phase
	if st.Phase == "" {
		st.Phase = PhaseGroups
	}
	st.Qualifiers = doc.Qualifiers

	*s = *st
	return nil
}
