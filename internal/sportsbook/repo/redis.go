package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/league-sportsbook/internal/tournament"
)

// Redis persiste o documento em uma única chave, sem TTL
type Redis struct {
	Client *redis.Client
	Key    string
}

// NewRedis cria o repositório de estado em Redis
func NewRedis(c *redis.Client, key string) *Redis { return &Redis{Client: c, Key: key} }

func (r *Redis) Load(ctx context.Context) (*tournament.State, error) {
	b, err := r.Client.Get(ctx, r.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.Key, err)
	}
	return decode(b)
}

func (r *Redis) Save(ctx context.Context, st *tournament.State) error {
	b, err := encode(st)
	if err != nil {
		return err
	}
	// SET é atômico: leitores veem o documento antigo ou o novo, nunca parcial
	if err := r.Client.Set(ctx, r.Key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.Key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error { return r.Client.Ping(ctx).Err() }
