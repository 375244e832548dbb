package events

import "time"

type TournamentReset struct {
	Groups []string  `json:"groups"`
	Ts     time.Time `json:"ts"`
}
