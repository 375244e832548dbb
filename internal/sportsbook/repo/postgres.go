package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

const schema = `
CREATE TABLE IF NOT EXISTS tournament_state (
    tournament_id TEXT PRIMARY KEY,
    document      JSONB NOT NULL,
    version       BIGINT NOT NULL DEFAULT 1,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Postgres persiste o documento do torneio em uma linha JSONB por tournament_id
type Postgres struct {
	db           *sql.DB
	tournamentID string
}

// NewPostgres retorna o repositório de estado em Postgres
func NewPostgres(db *sql.DB, tournamentID string) *Postgres {
	return &Postgres{db: db, tournamentID: tournamentID}
}

// EnsureSchema cria a tabela se ainda não existir
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tournament_state: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context) (*tournament.State, error) {
	var doc []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT document FROM tournament_state WHERE tournament_id=$1`, p.tournamentID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("select tournament_state: %w", err)
	}
	return decode(doc)
}

// Save faz upsert do documento e incrementa a versão
func (p *Postgres) Save(ctx context.Context, st *tournament.State) error {
	doc, err := encode(st)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO tournament_state (tournament_id, document, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (tournament_id)
		DO UPDATE SET document = EXCLUDED.document,
		              version = tournament_state.version + 1,
		              updated_at = NOW()`,
		p.tournamentID, string(doc),
	)
	if err != nil {
		return fmt.Errorf("upsert tournament_state: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }
