// File: internal/infra/security/password.go
package security

import (
	"quote-quiz/internal/domain/ports/adapter"

	"golang.org/x/crypto/bcrypt"
)

var _ adapter.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes credentials with bcrypt. Cost 10 matches the usual
// interactive-login budget.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
