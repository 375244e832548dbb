package events

// Evento publicado no tópico "wager_placed" após o débito do stake
type WagerPlaced struct {
	WagerID     string `json:"wager_id"`
	Participant string `json:"participant"`
	Home        string `json:"home"`
	Away        string `json:"away"`
	Phase       string `json:"phase"`
	Prediction  string `json:"prediction"` // "home" | "draw" | "away"
	Stake       int64  `json:"stake"`
	Balance     int64  `json:"balance"` // saldo após o débito
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
