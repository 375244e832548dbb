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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/league-sportsbook/internal/shared/cache"
	"github.com/radieske/league-sportsbook/internal/shared/config"
	"github.com/radieske/league-sportsbook/internal/shared/db"
	"github.com/radieske/league-sportsbook/internal/shared/kafka"
	"github.com/radieske/league-sportsbook/internal/shared/logger"
	"github.com/radieske/league-sportsbook/internal/shared/metrics"
	httpapi "github.com/radieske/league-sportsbook/internal/sportsbook/http"
	"github.com/radieske/league-sportsbook/internal/sportsbook/producer"
	"github.com/radieske/league-sportsbook/internal/sportsbook/pubsub"
	"github.com/radieske/league-sportsbook/internal/sportsbook/repo"
	"github.com/radieske/league-sportsbook/internal/sportsbook/store"
	"github.com/radieske/league-sportsbook/internal/sportsbook/ws"
)

// gateway é o repositório de estado com healthcheck
type gateway interface {
	store.Gateway
	Ping(ctx context.Context) error
}

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service",
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
		zap.String("state_backend", cfg.StateBackend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis é compartilhado entre o backend de estado e o broadcast do WS
	var rdb *redis.Client
	if cfg.StateBackend == "redis" || cfg.RedisPubSubChannel != "" {
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		log.Info("redis connected")
	}

	gw, closeGW, err := openGateway(ctx, cfg, rdb)
	if err != nil {
		log.Fatal("state backend", zap.String("backend", cfg.StateBackend), zap.Error(err))
	}
	defer closeGW()

	hub := ws.NewHub(log, func(*http.Request) bool { return true })

	// broadcast: via Redis quando há canal (várias instâncias), senão direto no hub
	var notifiers []store.Notifier
	if cfg.RedisPubSubChannel != "" {
		notifiers = append(notifiers, pubsub.NewRedisBroadcaster(rdb, cfg.RedisPubSubChannel))
	} else {
		notifiers = append(notifiers, ws.LocalNotifier{Hub: hub})
	}

	if cfg.KafkaBrokers != "" {
		if cfg.Env == "local" || cfg.Env == "dev" {
			if err := kafka.EnsureTopics(ctx, cfg.KafkaBrokers, cfg.TopicWagerPlaced, cfg.TopicMatchSettled, cfg.TopicPhaseAdvanced, cfg.TopicTournamentReset); err != nil {
				log.Warn("ensure kafka topics", zap.Error(err))
			}
		}
		wagerW := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicWagerPlaced)
		matchW := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchSettled)
		phaseW := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicPhaseAdvanced)
		resetW := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTournamentReset)
		defer wagerW.Close()
		defer matchW.Close()
		defer phaseW.Close()
		defer resetW.Close()
		notifiers = append(notifiers, producer.NewKafkaPublisher(wagerW, matchW, phaseW, resetW))
		log.Info("kafka publisher ready", zap.String("brokers", cfg.KafkaBrokers))
	}

	st, err := store.Open(ctx, log, gw, store.Options{
		StartingBalance: cfg.StartingBalance,
		Notifiers:       notifiers,
	})
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	sum := st.Summary()
	log.Info("tournament loaded",
		zap.String("phase", string(sum.Phase)),
		zap.Int("participants", sum.Participants),
		zap.Int("matches", sum.Matches),
	)

	api := httpapi.NewServer(log, st, cfg.DefaultStake, hub.HandleWS)
	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsSrv := metrics.NewMetricsServer(cfg.MetricsPort, gw.Ping)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.RedisPubSubChannel != "" {
		ws.StartRedisSubscriber(gctx, rdb, cfg.RedisPubSubChannel, hub)
		log.Info("ws redis subscriber started", zap.String("channel", cfg.RedisPubSubChannel))
	}

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", apiSrv.Addr))
		return listen(apiSrv)
	})
	g.Go(func() error {
		log.Info("metrics/health server starting", zap.String("addr", metricsSrv.Addr))
		return listen(metricsSrv)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return
	}
	log.Info("bye")
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", srv.Addr, err)
	}
	return nil
}

// openGateway escolhe o backend pelo STATE_BACKEND
func openGateway(ctx context.Context, cfg config.Config, rdb *redis.Client) (gateway, func(), error) {
	noop := func() {}
	switch cfg.StateBackend {
	case "file", "":
		return repo.NewFile(cfg.StateFile), noop, nil
	case "postgres":
		pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		gw := repo.NewPostgres(pg, cfg.TournamentID)
		if err := gw.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, noop, err
		}
		return gw, func() { _ = pg.Close() }, nil
	case "redis":
		return repo.NewRedis(rdb, cfg.StateRedisKey), noop, nil
	case "s3":
		gw, err := repo.NewS3(ctx, repo.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Key:             cfg.S3Key,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, noop, err
		}
		return gw, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown STATE_BACKEND %q (file|postgres|redis|s3)", cfg.StateBackend)
	}
}
