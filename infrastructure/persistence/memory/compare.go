package memory

import (
	"strings"
	"time"
)

// compareStrings byte-wise, matching the binary collation used by the relational backend
func compareStrings(a, b string) int {
	return strings.Compare(a, b)
}

// newestFirst is the default order of every catalog repository: created_at desc
func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}

func oldestFirst(a, b time.Time) int {
	return a.Compare(b)
}

// clonePtr 复制指针指向的值，nil 保持 nil
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
