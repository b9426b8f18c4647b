package memory

import (
	"context"
	"sync"

	"catalog/domain/shared"
)

// UnitOfWork in-memory implementation with the same contract as the relational one.
// Do hands its journal to the repositories through the context; Rollback
// replays the journal so the writes made inside Do are undone in reverse order.
// Start/Commit/Rollback called directly only track state: repositories record
// undo steps only for writes made with the context Do passes to fn.
type UnitOfWork struct {
	mu        sync.Mutex
	active    bool
	journal   *journal
	registry  shared.AggregateRegistry
	commits   int
	rollbacks int
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Start(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.active {
		return nil
	}
	u.active = true
	u.journal = &journal{}
	return nil
}

func (u *UnitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.active {
		return shared.ErrNoActiveTransaction
	}
	u.active = false
	u.journal = nil
	u.commits++
	return nil
}

func (u *UnitOfWork) Rollback() error {
	u.mu.Lock()
	if !u.active {
		u.mu.Unlock()
		return shared.ErrNoActiveTransaction
	}
	j := u.journal
	u.active = false
	u.journal = nil
	u.rollbacks++
	u.mu.Unlock()

	// 撤销函数会获取仓储的锁，不能持有 u.mu 执行
	j.replay()
	return nil
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if j := u.currentJournal(); j != nil {
		return fn(contextWithJournal(ctx, j))
	}
	if err := u.Start(ctx); err != nil {
		return err
	}
	ctx = contextWithJournal(ctx, u.currentJournal())

	defer func() {
		if r := recover(); r != nil {
			_ = u.Rollback()
			panic(r)
		}
	}()
	if err := fn(ctx); err != nil {
		_ = u.Rollback()
		return err
	}
	return u.Commit()
}

func (u *UnitOfWork) AddAggregateRoot(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.registry.Add(aggregate)
}

func (u *UnitOfWork) AggregateRoots() []shared.AggregateRoot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.registry.All()
}

// Commits / Rollbacks let tests assert on the outcome of Do
func (u *UnitOfWork) Commits() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.commits
}

func (u *UnitOfWork) Rollbacks() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rollbacks
}

// currentJournal 活动事务的撤销记录，没有活动事务时为 nil
func (u *UnitOfWork) currentJournal() *journal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.journal
}

// UnitOfWorkFactory hands out fresh in-memory units of work and remembers them
type UnitOfWorkFactory struct {
	mu    sync.Mutex
	units []*UnitOfWork
}

func NewUnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	f.mu.Lock()
	defer f.mu.Unlock()
	uow := NewUnitOfWork()
	f.units = append(f.units, uow)
	return uow
}

// Last returns the most recently created unit of work, or nil
func (f *UnitOfWorkFactory) Last() *UnitOfWork {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.units) == 0 {
		return nil
	}
	return f.units[len(f.units)-1]
}

var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
