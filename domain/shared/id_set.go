package shared

import "sort"

// IDSet 关联标识集合
// 以 id 字符串为键保证唯一，插入顺序无意义；
// Values() 按字符串排序输出，保证持久化与比较的确定性
type IDSet[ID Identifier] struct {
	items map[string]ID
}

// NewIDSet 用给定标识创建集合，重复的标识只保留一个
func NewIDSet[ID Identifier](ids ...ID) IDSet[ID] {
	s := IDSet[ID]{items: make(map[string]ID, len(ids))}
	for _, id := range ids {
		s.items[id.String()] = id
	}
	return s
}

func (s *IDSet[ID]) Add(id ID) {
	if s.items == nil {
		s.items = make(map[string]ID)
	}
	s.items[id.String()] = id
}

func (s *IDSet[ID]) Remove(id ID) {
	delete(s.items, id.String())
}

func (s IDSet[ID]) Has(id ID) bool {
	_, ok := s.items[id.String()]
	return ok
}

func (s IDSet[ID]) Len() int { return len(s.items) }

func (s IDSet[ID]) Values() []ID {
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]ID, len(keys))
	for i, key := range keys {
		values[i] = s.items[key]
	}
	return values
}

// Strings 返回排序后的 id 字符串
func (s IDSet[ID]) Strings() []string {
	values := s.Values()
	out := make([]string, len(values))
	for i, id := range values {
		out[i] = id.String()
	}
	return out
}

// Clone 返回不共享底层 map 的副本
func (s IDSet[ID]) Clone() IDSet[ID] {
	return NewIDSet(s.Values()...)
}

func (s IDSet[ID]) Equals(other IDSet[ID]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for key := range s.items {
		if _, ok := other.items[key]; !ok {
			return false
		}
	}
	return true
}
