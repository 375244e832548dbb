package dto

type RegisterRequest struct {
	Name string `json:"name"`
}

// PlaceWagerRequest: Phase vazio = "groups"; Stake ausente = stake padrão da banca
type PlaceWagerRequest struct {
	Participant string `json:"participant"`
	Home        string `json:"home"`
	Away        string `json:"away"`
	Phase       string `json:"phase,omitempty"`
	Prediction  string `json:"prediction"` // "home" | "draw" | "away"
	Stake       *int64 `json:"stake,omitempty"`
}

// RecordResultRequest: os gols são obrigatórios (0 é placar válido)
type RecordResultRequest struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	Phase     string `json:"phase,omitempty"`
	HomeGoals *int   `json:"home_goals"`
	AwayGoals *int   `json:"away_goals"`
}
