package repo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

// ErrNoState indica que nada foi salvo ainda; o store começa do estado default
var ErrNoState = errors.New("no tournament state stored")

func encode(st *tournament.State) ([]byte, error) {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

func decode(b []byte) (*tournament.State, error) {
	var st tournament.State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stored state: %w", err)
	}
	return &st, nil
}
