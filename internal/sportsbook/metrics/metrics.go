package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Coletores do sportsbook, registrados no registry default (expostos em /metrics)
var (
	ParticipantsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "participants_registered_total",
		Help:      "Participants registered.",
	})

	WagersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "wagers_placed_total",
		Help:      "Wagers accepted, by prediction.",
	}, []string{"prediction"})

	WagersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "wagers_rejected_total",
		Help:      "Wagers refused by validation, by reason.",
	}, []string{"reason"})

	StakeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "stake_total",
		Help:      "Sum of accepted stakes.",
	})

	WagersSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "wagers_settled_total",
		Help:      "Wagers settled, by outcome.",
	}, []string{"outcome"})

	PayoutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "payout_total",
		Help:      "Sum of payouts credited.",
	})

	MatchesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "matches_recorded_total",
		Help:      "Match results recorded, by phase.",
	}, []string{"phase"})

	TournamentResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "tournament_resets_total",
		Help:      "Tournament resets applied.",
	})

	PersistDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sportsbook",
		Name:      "persist_duration_seconds",
		Help:      "Time spent saving the tournament state.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})

	NotifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportsbook",
		Name:      "notify_failures_total",
		Help:      "Event publication failures, by event.",
	}, []string{"event"})
)
