package model

import (
	"strings"
	"time"

	"quote-quiz/internal/domain"
)

// AuthorStat tracks how well a user does against a single author.
// RewardSent flips to true only after the discount mail actually went out.
type AuthorStat struct {
	Count      int  `json:"count"`
	RewardSent bool `json:"rewardSent"`
}

// User is a registered player. Score and AuthorStats are mutated only by the
// guess resolver inside a store transaction; RewardSent only after a
// successful mail send.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Score        int
	AuthorStats  map[string]AuthorStat
	CreatedAt    time.Time
}

func NewUser(email, name, passwordHash string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	if passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		AuthorStats:  make(map[string]AuthorStat),
		CreatedAt:    time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == 0 }

// RecordCorrectGuess bumps the score and the per-author counter and returns
// the updated stat for threshold checks.
func (u *User) RecordCorrectGuess(author string) AuthorStat {
	if u.AuthorStats == nil {
		u.AuthorStats = make(map[string]AuthorStat)
	}
	stat := u.AuthorStats[author]
	stat.Count++
	u.AuthorStats[author] = stat
	u.Score++
	return stat
}

// CrossedRewardThreshold reports whether the per-author count has reached the
// reward threshold without a reward mail having gone out yet.
func (u *User) CrossedRewardThreshold(author string, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	stat := u.AuthorStats[author]
	return stat.Count >= threshold && !stat.RewardSent
}
