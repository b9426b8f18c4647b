package memory

import (
	"context"
	"slices"
	"sync"
)

// journal 一个工作单元内的撤销记录
// 仓储的每次写入都登记一个撤销函数，回滚时逆序执行，提交时丢弃
type journal struct {
	mu    sync.Mutex
	undos []func()
}

type journalKey struct{}

func contextWithJournal(ctx context.Context, j *journal) context.Context {
	return context.WithValue(ctx, journalKey{}, j)
}

func journalFromContext(ctx context.Context) *journal {
	if ctx == nil {
		return nil
	}
	j, _ := ctx.Value(journalKey{}).(*journal)
	return j
}

// recordUndo 工作单元之外的写入直接生效，不登记
func recordUndo(ctx context.Context, undo func()) {
	if j := journalFromContext(ctx); j != nil {
		j.add(undo)
	}
}

func (j *journal) add(undo func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undos = append(j.undos, undo)
}

// replay 逆序执行全部撤销函数
func (j *journal) replay() {
	j.mu.Lock()
	undos := j.undos
	j.undos = nil
	j.mu.Unlock()

	for _, undo := range slices.Backward(undos) {
		undo()
	}
}
