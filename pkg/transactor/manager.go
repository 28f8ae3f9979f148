package transactor

import "context"

// Manager runs fn in one database transaction. Repositories called with the
// ctx passed to fn join it; fn's error rolls it back.
//
//go:generate mockgen -source=manager.go -destination=mocks/mock.go -package=mocktransactor
type Manager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
