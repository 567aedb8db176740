package repository

import "time"

// Entry kinds.
const (
	KindCommit  = "commit"
	KindClear   = "clear"
	KindReplace = "replace"
)

// Entry represents a journal row: a value a scenario field held at some
// point. A nil Value means the field was empty.
type Entry struct {
	ID        string
	Scenario  string
	Value     *float64
	Valid     bool
	Kind      string
	CreatedAt time.Time
}
