package events

// MatchResult é a mensagem consumida pelo results-worker (tópico "match_results")
type MatchResult struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
	Source    string `json:"source,omitempty"`
}
