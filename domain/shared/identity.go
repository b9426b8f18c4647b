package shared

import (
	"github.com/google/uuid"
)

// Identifier 聚合标识约束
// 值比较（==）即语义相等；String() 用于持久化与集合键
type Identifier interface {
	comparable
	String() string
}

// UUID 值对象 - 聚合标识的底层表示
// 各聚合以具名结构体嵌入 UUID（CategoryID、GenreID...），
// 即使底层值相同，不同聚合的标识在编译期也不能互换
type UUID struct {
	value string
}

// NewUUID 生成新的 UUID（v7，按时间有序）
func NewUUID() UUID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return UUID{value: id.String()}
}

// ParseUUID 解析并规范化 UUID 字符串
func ParseUUID(value string) (UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return UUID{}, NewInvalidUUIDError(value)
	}
	return UUID{value: id.String()}, nil
}

// MustParseUUID 解析失败时 panic，仅用于测试数据和常量
func MustParseUUID(value string) UUID {
	id, err := ParseUUID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (u UUID) String() string { return u.value }

func (u UUID) IsZero() bool { return u.value == "" }

func (u UUID) Equals(other UUID) bool { return u.value == other.value }
