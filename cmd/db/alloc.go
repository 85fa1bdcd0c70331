package db

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	nodeSize  = int(unsafe.Sizeof(qNode{}))
	queueSize = int(unsafe.Sizeof(Queue{}))
)

// Allocator accounts for the storage held by queues. Reserve either grants
// the whole request or fails with ErrAllocation and grants nothing.
type Allocator interface {
	Reserve(n int) error
	Release(n int)
}

// Unbounded never refuses a reservation.
type Unbounded struct {
	used atomic.Int64
}

func (u *Unbounded) Reserve(n int) error {
	u.used.Add(int64(n))
	return nil
}

func (u *Unbounded) Release(n int) {
	u.used.Add(-int64(n))
}

func (u *Unbounded) Used() int {
	return int(u.used.Load())
}

// Budget refuses reservations that would take usage above limit.
// A limit of 0 or less disables the check.
type Budget struct {
	limit int64
	used  atomic.Int64
}

func NewBudget(limit int) *Budget {
	return &Budget{limit: int64(limit)}
}

func (b *Budget) Reserve(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "reserve %d bytes", n)
	}

	for {
		used := b.used.Load()
		if b.limit > 0 && used+int64(n) > b.limit {
			return errors.Wrapf(ErrAllocation, "reserve %d bytes with %d of %d in use", n, used, b.limit)
		}
		if b.used.CompareAndSwap(used, used+int64(n)) {
			return nil
		}
	}
}

func (b *Budget) Release(n int) {
	b.used.Add(-int64(n))
}

func (b *Budget) Used() int {
	return int(b.used.Load())
}

func (b *Budget) Limit() int {
	return int(b.limit)
}
