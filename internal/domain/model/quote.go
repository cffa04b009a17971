package model

import (
	"strings"
	"time"
)

// QuotePriority controls which end of the difficulty scale the selector
// favors when ordering candidates.
type QuotePriority string

const (
	// PriorityCorrect orders by descending global correct count (easier first).
	PriorityCorrect QuotePriority = "correct"
	// PriorityWrong orders by descending global wrong count (harder first).
	PriorityWrong QuotePriority = "wrong"
)

func ParseQuotePriority(s string) QuotePriority {
	if QuotePriority(strings.ToLower(strings.TrimSpace(s))) == PriorityCorrect {
		return PriorityCorrect
	}
	return PriorityWrong
}

// Quote is a catalog entry. ID is the external feed id, stable across syncs.
// The two counters only ever grow and are bumped by the guess resolver.
type Quote struct {
	ID             int64
	Content        string
	Author         string
	GuessedCorrect int
	GuessedFalse   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeAuthor folds case and surrounding whitespace so that
// "mark   TWAIN " and "Mark Twain" compare equal.
func NormalizeAuthor(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MatchesAuthor compares a submitted guess against the true author.
// Exact match after normalization, no fuzzy matching.
func (q *Quote) MatchesAuthor(guess string) bool {
	return NormalizeAuthor(guess) == NormalizeAuthor(q.Author)
}
