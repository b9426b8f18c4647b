/*
Package memory in-memory repositories.

InMemoryRepository is the reference backend: application tests run against it,
and the relational repositories are checked for equivalence against it.
Every sort ends with the id as the last key, like the relational ORDER BY.

Entities are copied on the way in and on the way out, the same way a database
row is: callers never share an instance with the store, and every load starts
with an empty Notification and no pending events. Writes made inside a
UnitOfWork are journaled through the context and undone on rollback.
*/
package memory

import (
	"context"
	"slices"
	"sync"

	"catalog/domain/shared"
)

// CloneFunc returns an independent copy of an entity, rebuilt from its state
type CloneFunc[E any] func(E) E

// InMemoryRepository generic CRUD over an insertion-ordered slice
type InMemoryRepository[ID shared.Identifier, E shared.Entity[ID]] struct {
	mu         sync.RWMutex
	items      []E
	entityName string
	clone      CloneFunc[E]
}

// NewInMemoryRepository entityName is used in NotFound messages
func NewInMemoryRepository[ID shared.Identifier, E shared.Entity[ID]](entityName string, clone CloneFunc[E]) *InMemoryRepository[ID, E] {
	return &InMemoryRepository[ID, E]{entityName: entityName, clone: clone}
}

func (r *InMemoryRepository[ID, E]) Insert(ctx context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, r.clone(entity))

	id := entity.ID()
	recordUndo(ctx, func() { r.remove(id) })
	return nil
}

func (r *InMemoryRepository[ID, E]) BulkInsert(ctx context.Context, entities []E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]ID, 0, len(entities))
	for _, entity := range entities {
		r.items = append(r.items, r.clone(entity))
		ids = append(ids, entity.ID())
	}

	recordUndo(ctx, func() {
		for _, id := range ids {
			r.remove(id)
		}
	})
	return nil
}

func (r *InMemoryRepository[ID, E]) Update(ctx context.Context, entity E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(entity.ID())
	if i < 0 {
		return shared.NewNotFoundError(r.entityName, entity.ID().String())
	}
	previous := r.items[i]
	r.items[i] = r.clone(entity)

	recordUndo(ctx, func() { r.restore(previous) })
	return nil
}

func (r *InMemoryRepository[ID, E]) Delete(ctx context.Context, id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return shared.NewNotFoundError(r.entityName, id.String())
	}
	previous := r.items[i]
	r.items = slices.Delete(r.items, i, i+1)

	recordUndo(ctx, func() { r.reinsert(i, previous) })
	return nil
}

func (r *InMemoryRepository[ID, E]) FindByID(ctx context.Context, id ID) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero E
	i := r.indexOf(id)
	if i < 0 {
		return zero, nil
	}
	return r.clone(r.items[i]), nil
}

func (r *InMemoryRepository[ID, E]) FindAll(ctx context.Context) ([]E, error) {
	return r.Items(), nil
}

func (r *InMemoryRepository[ID, E]) FindByIDs(ctx context.Context, ids []ID) ([]E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]E, 0, len(ids))
	for _, item := range r.items {
		if _, ok := wanted[item.ID()]; ok {
			out = append(out, r.clone(item))
		}
	}
	return out, nil
}

func (r *InMemoryRepository[ID, E]) ExistsByID(ctx context.Context, ids []ID) (shared.ExistsResult[ID], error) {
	if len(ids) == 0 {
		return shared.ExistsResult[ID]{}, shared.NewInvalidArgumentError(r.entityName, "ids must be an array with at least one element")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	existing := make(map[string]struct{}, len(r.items))
	for _, item := range r.items {
		existing[item.ID().String()] = struct{}{}
	}
	return shared.PartitionIDs(ids, existing), nil
}

// Items returns copies of the stored entities in insertion order, handy in tests
func (r *InMemoryRepository[ID, E]) Items() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cloneAll(r.items)
}

// stored 存储中的实例本身，只读使用
func (r *InMemoryRepository[ID, E]) stored() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

func (r *InMemoryRepository[ID, E]) cloneAll(items []E) []E {
	out := make([]E, len(items))
	for i, item := range items {
		out[i] = r.clone(item)
	}
	return out
}

func (r *InMemoryRepository[ID, E]) indexOf(id ID) int {
	for i, item := range r.items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

// 以下为撤销操作，由工作单元回滚时调用

func (r *InMemoryRepository[ID, E]) remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.items = slices.Delete(r.items, i, i+1)
	}
}

func (r *InMemoryRepository[ID, E]) restore(previous E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(previous.ID()); i >= 0 {
		r.items[i] = previous
		return
	}
	r.items = append(r.items, previous)
}

func (r *InMemoryRepository[ID, E]) reinsert(i int, previous E) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i = min(i, len(r.items))
	r.items = slices.Insert(r.items, i, previous)
}

// CompareFunc orders two entities (negative, zero, positive)
type CompareFunc[E any] func(a, b E) int

// SearchConfig describes how one aggregate is filtered and sorted in memory
type SearchConfig[E any, F any] struct {
	// Filter reports whether the entity matches a non-nil filter
	Filter func(entity E, filter F) bool

	// Comparators keyed by sortable field name, ascending order
	Comparators map[string]CompareFunc[E]

	// DefaultOrder used when the requested sort is absent or not allowed
	DefaultOrder CompareFunc[E]
}

// InMemorySearchableRepository adds filter → sort → paginate on top of InMemoryRepository
type InMemorySearchableRepository[ID shared.Identifier, E shared.Entity[ID], F any] struct {
	*InMemoryRepository[ID, E]
	config SearchConfig[E, F]
}

func NewInMemorySearchableRepository[ID shared.Identifier, E shared.Entity[ID], F any](
	entityName string,
	clone CloneFunc[E],
	config SearchConfig[E, F],
) *InMemorySearchableRepository[ID, E, F] {
	return &InMemorySearchableRepository[ID, E, F]{
		InMemoryRepository: NewInMemoryRepository[ID, E](entityName, clone),
		config:             config,
	}
}

// SortableFields returns the allow-list in a stable order
func (r *InMemorySearchableRepository[ID, E, F]) SortableFields() []string {
	fields := make([]string, 0, len(r.config.Comparators))
	for field := range r.config.Comparators {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

func (r *InMemorySearchableRepository[ID, E, F]) Search(ctx context.Context, params shared.SearchParams[F]) (shared.SearchResult[E], error) {
	items := r.stored()

	filtered := r.applyFilter(items, params.Filter())
	sorted := r.applySort(filtered, params.Sort(), params.SortDir())
	page := applyPaginate(sorted, params.Offset(), params.Limit())

	return shared.NewSearchResult(r.cloneAll(page), len(filtered), params.Page(), params.PerPage()), nil
}

func (r *InMemorySearchableRepository[ID, E, F]) applyFilter(items []E, filter *F) []E {
	if filter == nil || r.config.Filter == nil {
		return items
	}
	out := make([]E, 0, len(items))
	for _, item := range items {
		if r.config.Filter(item, *filter) {
			out = append(out, item)
		}
	}
	return out
}

func (r *InMemorySearchableRepository[ID, E, F]) applySort(items []E, field string, dir shared.SortDirection) []E {
	cmp, ok := r.config.Comparators[field]
	if field == "" || !ok {
		if r.config.DefaultOrder == nil {
			return items
		}
		cmp = r.config.DefaultOrder
	} else if dir == shared.SortDesc {
		asc := cmp
		cmp = func(a, b E) int { return asc(b, a) }
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b E) int {
		if c := cmp(a, b); c != 0 {
			return c
		}
		return compareStrings(a.ID().String(), b.ID().String())
	})
	return sorted
}

func applyPaginate[E any](items []E, offset, limit int) []E {
	if offset >= len(items) {
		return []E{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return slices.Clone(items[offset:end])
}
