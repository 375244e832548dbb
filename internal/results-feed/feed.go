package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/league-sportsbook/pkg/contracts/events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publish lê resultados em JSON, um por linha, e publica cada um no tópico
// match_results. Linhas vazias e iniciadas por # são ignoradas. A chave da
// mensagem é o confronto, então reenvios caem na mesma partição.
func Publish(ctx context.Context, r io.Reader, w messageWriter, source string) (int, error) {
	sc := bufio.NewScanner(r)
	n, line := 0, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var res events.MatchResult
		if err := json.Unmarshal([]byte(text), &res); err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		if res.Home == "" || res.Away == "" || res.HomeGoals < 0 || res.AwayGoals < 0 {
			return n, fmt.Errorf("line %d: invalid result %q", line, text)
		}
		if res.Source == "" {
			res.Source = source
		}

		b, _ := json.Marshal(res)
		err := w.WriteMessages(ctx, kafka.Message{
			Key:   []byte(res.Home + ":" + res.Away),
			Value: b,
			Time:  time.Now(),
		})
		if err != nil {
			return n, fmt.Errorf("line %d: publish: %w", line, err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, nil
}
