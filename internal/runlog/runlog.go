package runlog

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength caps the stored message, in characters.
const MaxMessageLength = 1500

// DefaultLimit is how many entries the log view shows.
const DefaultLimit = 100

const keyTimeLayout = "20060102T150405"

// Entry is one recorded run of the pipeline for a client and period.
type Entry struct {
	ID         uuid.UUID
	Key        string
	ClientID   string
	ClientName string
	Period     string
	ExecutedAt time.Time
	Status     string
	Message    string
}

// Key builds the unique identifier of a run: {client}_{period}_{timestamp}.
func Key(clientID, period string, at time.Time) string {
	return clientID + "_" + period + "_" + at.Format(keyTimeLayout)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
