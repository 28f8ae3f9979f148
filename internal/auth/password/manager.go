package password

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type manager struct {
	cost   int
	logger *zap.Logger
}

// New returns a bcrypt manager. A zero cost means bcrypt.DefaultCost.
func New(cost int, logger *zap.Logger) *manager {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &manager{
		cost:   cost,
		logger: logger,
	}
}

func (m *manager) GenerateHashFromPassword(password []byte) ([]byte, error) {
	passHash, err := bcrypt.GenerateFromPassword(password, m.cost)
	if err != nil {
		m.logger.Error("unexpected error when hashing password", zap.Error(err))
		return nil, err
	}

	return passHash, nil
}

// CompareHashAndPassword returns bcrypt.ErrMismatchedHashAndPassword for a wrong password.
func (m *manager) CompareHashAndPassword(hashedPassword []byte, password []byte) error {
	err := bcrypt.CompareHashAndPassword(hashedPassword, password)
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		m.logger.Error("unexpected error when comparing passwords", zap.Error(err))
	}

	return err
}
