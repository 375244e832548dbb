package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/results-worker/client"
	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

type resultPoster interface {
	RecordResult(ctx context.Context, r events.MatchResult) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor encaminha cada resultado do tópico match_results ao sportsbook.
// Falhas transitórias são repetidas; o que não passa vai para a DLQ.
type Processor struct {
	log     *zap.Logger
	api     resultPoster
	dlq     messageWriter // opcional
	retries int
	backoff func(attempt int) time.Duration
}

func NewProcessor(log *zap.Logger, api resultPoster, dlq messageWriter) *Processor {
	return &Processor{
		log:     log,
		api:     api,
		dlq:     dlq,
		retries: 3,
		backoff: func(attempt int) time.Duration { return time.Duration(300*attempt) * time.Millisecond },
	}
}

// Handle processa uma mensagem. Erro só quando nem a DLQ aceitou: aí o offset
// não deve ser commitado.
func (p *Processor) Handle(ctx context.Context, msg kafka.Message) error {
	var res events.MatchResult
	if err := json.Unmarshal(msg.Value, &res); err != nil {
		return p.deadLetter(ctx, msg, fmt.Errorf("unmarshal match_result: %w", err))
	}
	if res.Home == "" || res.Away == "" {
		return p.deadLetter(ctx, msg, errors.New("home and away are required"))
	}

	err := p.api.RecordResult(ctx, res)
	for attempt := 1; err != nil && !client.Permanent(err) && attempt <= p.retries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff(attempt)):
		}
		err = p.api.RecordResult(ctx, res)
	}

	switch {
	case err == nil:
		processed.WithLabelValues("recorded").Inc()
		p.log.Info("result recorded", zap.String("home", res.Home), zap.String("away", res.Away),
			zap.Int("home_goals", res.HomeGoals), zap.Int("away_goals", res.AwayGoals))
		return nil
	case client.AlreadyRecorded(err):
		processed.WithLabelValues("duplicate").Inc()
		p.log.Info("result already recorded", zap.String("home", res.Home), zap.String("away", res.Away))
		return nil
	default:
		return p.deadLetter(ctx, msg, err)
	}
}

func (p *Processor) deadLetter(ctx context.Context, msg kafka.Message, cause error) error {
	p.log.Error("match_result to dlq", zap.ByteString("key", msg.Key), zap.Error(cause))
	if p.dlq == nil {
		processed.WithLabelValues("failed").Inc()
		return nil
	}
	err := p.dlq.WriteMessages(ctx, kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(cause.Error())},
			{Key: "source_offset", Value: []byte(fmt.Sprint(msg.Offset))},
		},
	})
	if err != nil {
		processed.WithLabelValues("failed").Inc()
		return fmt.Errorf("write dlq: %w", err)
	}
	processed.WithLabelValues("dlq").Inc()
	return nil
}

// Run consome até ctx ser cancelado; commit só depois de Handle resolver a mensagem
func (p *Processor) Run(ctx context.Context, r messageReader) error {
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.log.Warn("kafka fetch", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		// o commit de um offset cobre os anteriores: a mesma mensagem é
		// reprocessada até resolver, nunca se pula para a próxima
		for attempt := 1; ; attempt++ {
			err := p.Handle(ctx, msg)
			if err == nil {
				break
			}
			if ctx.Err() != nil {
				return nil
			}
			p.log.Error("process match_result", zap.Int64("offset", msg.Offset), zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.backoff(min(attempt, 10))):
			}
		}
		if err := r.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			p.log.Warn("kafka commit", zap.Error(err))
		}
	}
}
