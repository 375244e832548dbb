package topics

const (
	// Apostas
	WagerPlaced  = "wager_placed"
	MatchSettled = "match_settled"

	// Torneio
	PhaseAdvanced   = "phase_advanced"
	TournamentReset = "tournament_reset"
	MatchResults    = "match_results"

	// DLQs
	MatchResultsDLQ = "match_results_dlq"
)
