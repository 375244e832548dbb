package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/league-sportsbook/internal/results-worker/client"
	"github.com/radieske/league-sportsbook/internal/results-worker/worker"
	"github.com/radieske/league-sportsbook/internal/shared/config"
	"github.com/radieske/league-sportsbook/internal/shared/kafka"
	"github.com/radieske/league-sportsbook/internal/shared/logger"
	"github.com/radieske/league-sportsbook/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.KafkaBrokers == "" {
		log.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == "local" || cfg.Env == "dev" {
		if err := kafka.EnsureTopics(ctx, cfg.KafkaBrokers, cfg.TopicMatchResults, cfg.TopicMatchResultsDL); err != nil {
			log.Warn("ensure kafka topics", zap.Error(err))
		}
	}

	// Kafka consumer: resultados vindos do feed externo
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicMatchResults, "results-worker")
	defer reader.Close()

	var proc *worker.Processor
	api := client.New(cfg.SportsbookURL)
	if cfg.TopicMatchResultsDL != "" {
		dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchResultsDL)
		defer dlqWriter.Close()
		proc = worker.NewProcessor(log, api, dlqWriter)
	} else {
		proc = worker.NewProcessor(log, api, nil)
	}

	// healthz: o sportsbook precisa responder
	metricsSrv := metrics.NewMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, cfg.SportsbookURL+"/tournament", nil)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("sportsbook http %d", res.StatusCode)
		}
		return nil
	})

	log.Info("results-worker started",
		zap.String("consume", cfg.TopicMatchResults),
		zap.String("dlq", cfg.TopicMatchResultsDL),
		zap.String("sportsbook", cfg.SportsbookURL),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return proc.Run(gctx, reader)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("worker stopped with error", zap.Error(err))
	}
}
