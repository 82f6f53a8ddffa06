// Package service implements the order and booking orchestrators: the
// transactional glue between the allocation rules and the store. Each
// mutating operation runs inside a single storage transaction so that it
// fully applies or fully rolls back; the store is abstracted behind the
// Store port so the same orchestration code is exercised by the MySQL
// implementation in production and by an in-memory store in tests.
package service

import (
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// Store and Tx are the storage ports the orchestrators run against. The
// interfaces live next to their MySQL implementation in the repository
// package; the aliases keep this package's API self-contained.
type (
	Store = repository.Store
	Tx    = repository.Tx
)
