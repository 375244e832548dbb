package events

import "time"

type PhaseAdvanced struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Qualifiers []string  `json:"qualifiers"`
	Ts         time.Time `json:"ts"`
}
