package relational

import (
	"context"
	"errors"
	"testing"

	"catalog/domain/category"
	"catalog/domain/shared"
	"catalog/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_FailedDeleteRollsBackEarlierInsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	uow := NewUnitOfWork(db)
	c := newCategory("Movie", 0)

	err := uow.Do(ctx, func(ctx context.Context) error {
		if err := repo.Insert(ctx, c); err != nil {
			return err
		}
		return repo.Delete(ctx, category.NewCategoryID())
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, uow.Transaction())

	found, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUnitOfWork_CommitsAllWrites(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	genres := NewGenreRepository(db)
	uow := NewUnitOfWork(db)

	c := newCategory("Movie", 0)
	g := newGenre("Drama", 1, c.ID())
	require.NoError(t, uow.Do(ctx, func(ctx context.Context) error {
		if err := categories.Insert(ctx, c); err != nil {
			return err
		}
		return genres.Insert(ctx, g)
	}))

	foundCategory, err := categories.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.NotNil(t, foundCategory)
	foundGenre, err := genres.FindByID(ctx, g.ID())
	require.NoError(t, err)
	assert.Equal(t, []category.CategoryID{c.ID()}, foundGenre.CategoryIDs())
}

func TestUnitOfWork_FailureAfterSeveralWritesKeepsNone(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	uow := NewUnitOfWork(db)
	boom := errors.New("boom")

	err := uow.Do(ctx, func(ctx context.Context) error {
		for i := 0; i < 3; i++ {
			if err := repo.Insert(ctx, newCategory("c", i)); err != nil {
				return err
			}
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUnitOfWork_NestedDoSharesTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	uow := NewUnitOfWork(db)
	inner := errors.New("inner")

	err := uow.Do(ctx, func(outerCtx context.Context) error {
		outerTx := persistence.TxFromContext(outerCtx)
		if err := repo.Insert(outerCtx, newCategory("outer", 0)); err != nil {
			return err
		}
		return uow.Do(outerCtx, func(innerCtx context.Context) error {
			assert.Same(t, outerTx, persistence.TxFromContext(innerCtx))
			if err := repo.Insert(innerCtx, newCategory("inner", 1)); err != nil {
				return err
			}
			return inner
		})
	})
	assert.ErrorIs(t, err, inner)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUnitOfWork_PanicRollsBackAndRepanics(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	uow := NewUnitOfWork(db)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = uow.Do(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.Insert(ctx, newCategory("lost", 0)))
			panic("kaboom")
		})
	})
	assert.Nil(t, uow.Transaction())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUnitOfWork_CommitAndRollbackRequireTransaction(t *testing.T) {
	uow := NewUnitOfWork(newTestDB(t))

	assert.ErrorIs(t, uow.Commit(), shared.ErrNoActiveTransaction)
	assert.ErrorIs(t, uow.Rollback(), shared.ErrNoActiveTransaction)

	require.NoError(t, uow.Start(ctx))
	tx := uow.Transaction()
	require.NotNil(t, tx)
	require.NoError(t, uow.Start(ctx))
	assert.Same(t, tx, uow.Transaction())

	require.NoError(t, uow.Commit())
	assert.Nil(t, uow.Transaction())
	assert.ErrorIs(t, uow.Commit(), shared.ErrNoActiveTransaction)

	// 提交后可以再次开启
	require.NoError(t, uow.Start(ctx))
	require.NoError(t, uow.Rollback())
}

func TestUnitOfWork_OperationID(t *testing.T) {
	db := newTestDB(t)

	uow := NewUnitOfWork(db)
	require.NoError(t, uow.Do(persistence.ContextWithOperationID(ctx, "op-42"), func(ctx context.Context) error {
		assert.Equal(t, "op-42", persistence.OperationIDFromContext(ctx))
		return nil
	}))

	var generated string
	require.NoError(t, NewUnitOfWork(db).Do(ctx, func(ctx context.Context) error {
		generated = persistence.OperationIDFromContext(ctx)
		return nil
	}))
	assert.NotEmpty(t, generated)
}

func TestUnitOfWork_AggregateRegistryDeduplicates(t *testing.T) {
	factory := NewUnitOfWorkFactory(newTestDB(t))
	uow := factory.New()
	c := newCategory("a", 0)

	uow.AddAggregateRoot(c)
	uow.AddAggregateRoot(c)
	uow.AddAggregateRoot(newCategory("b", 1))
	assert.Len(t, uow.AggregateRoots(), 2)
	assert.Empty(t, factory.New().AggregateRoots())
}
