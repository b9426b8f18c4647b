package shared

// Notification 非抛出式的错误收集器
// 字段名 → 有序错误信息列表（同一字段内去重）
// 聚合自身从不因为 Notification 有错误而返回 error，
// 由用例层检查 HasErrors() 后决定是否返回 EntityValidationError
type Notification struct {
	errors map[string][]string
}

// NewNotification 创建空的 Notification
func NewNotification() *Notification {
	return &Notification{errors: make(map[string][]string)}
}

// AddError 为字段追加错误信息，同一信息只记录一次
func (n *Notification) AddError(field, message string) {
	if n.errors == nil {
		n.errors = make(map[string][]string)
	}
	for _, existing := range n.errors[field] {
		if existing == message {
			return
		}
	}
	n.errors[field] = append(n.errors[field], message)
}

// SetError 覆盖字段的全部错误信息
func (n *Notification) SetError(field string, messages ...string) {
	if n.errors == nil {
		n.errors = make(map[string][]string)
	}
	if len(messages) == 0 {
		delete(n.errors, field)
		return
	}
	n.errors[field] = append([]string(nil), messages...)
}

func (n *Notification) HasErrors() bool {
	return len(n.errors) > 0
}

// FieldHasErrors 某个字段是否已有错误
func (n *Notification) FieldHasErrors(field string) bool {
	return len(n.errors[field]) > 0
}

// CopyErrors 合并另一个 Notification 的错误
func (n *Notification) CopyErrors(other *Notification) {
	if other == nil {
		return
	}
	for field, messages := range other.errors {
		for _, message := range messages {
			n.AddError(field, message)
		}
	}
}

// Errors 返回错误映射的副本
func (n *Notification) Errors() FieldErrors {
	out := make(FieldErrors, len(n.errors))
	for field, messages := range n.errors {
		out[field] = append([]string(nil), messages...)
	}
	return out
}

// Clear 清空全部错误
func (n *Notification) Clear() {
	n.errors = make(map[string][]string)
}
