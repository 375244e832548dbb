package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	feed "github.com/radieske/league-sportsbook/internal/results-feed"
	"github.com/radieske/league-sportsbook/internal/shared/config"
	"github.com/radieske/league-sportsbook/internal/shared/kafka"
	"github.com/radieske/league-sportsbook/internal/shared/logger"
)

// results-feed publica resultados (JSON por linha, arquivo ou stdin) no
// tópico consumido pelo results-worker
func main() {
	file := flag.String("f", "-", "arquivo com um resultado JSON por linha (- = stdin)")
	source := flag.String("source", "results-feed", "origem gravada nos resultados sem source")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New("results-feed", cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.KafkaBrokers == "" {
		log.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var in io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("open input", zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	if cfg.Env == "local" || cfg.Env == "dev" {
		if err := kafka.EnsureTopics(ctx, cfg.KafkaBrokers, cfg.TopicMatchResults); err != nil {
			log.Warn("ensure topic", zap.Error(err))
		}
	}

	w := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchResults)
	defer w.Close()

	n, err := feed.Publish(ctx, in, w, *source)
	log.Info("results published", zap.Int("count", n), zap.String("topic", cfg.TopicMatchResults))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Error("publish", zap.Error(err))
		os.Exit(1)
	}
}
