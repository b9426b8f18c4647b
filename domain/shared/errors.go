/*
Package shared - 领域层共享错误定义

设计原则:
1. 领域层定义哨兵错误(sentinel errors)，用于 errors.Is() 类型安全判断
2. DomainError 在创建时捕获堆栈，但延迟格式化（按需打印）
3. 校验错误（EntityValidationError / LoadEntityError）携带 字段 → 错误信息 映射
4. 领域错误不包含 HTTP 状态码等传输层概念

错误分类:
- EntityValidationError: 用例层检查 Notification 后抛出，新输入不合法
- LoadEntityError: Mapper 从存储重建聚合时重新校验失败，持久化数据已损坏或过期
- NotFoundError: 仓储 update/delete/findById 目标不存在
- InvalidArgumentError: 批量操作前置条件不满足（如 ExistsByID 传入空列表）
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ============================================================================
// 哨兵错误 (Sentinel Errors)
// ============================================================================

var (
	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument 调用方前置条件不满足
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation 实体校验失败
	ErrValidation = errors.New("entity validation error")

	// ErrLoadEntity 从存储加载的数据重新校验失败
	ErrLoadEntity = errors.New("load entity error")

	// ErrNoActiveTransaction 在没有活动事务时调用 Commit/Rollback
	ErrNoActiveTransaction = errors.New("no transaction is active")
)

// ============================================================================
// 领域错误结构体 (Domain Error)
// ============================================================================

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err 底层哨兵错误，用于 errors.Is() 判断
	Err error

	// Entity 发生错误的实体名称（如 "Category", "Video"）
	Entity string

	// Message 人类可读的错误描述
	Message string

	// stack 调用栈帧（私有），在创建时捕获，按需格式化
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack 按需格式化堆栈（只在打印日志时调用）
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack 捕获当前调用栈
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧为字符串切片，过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError 创建"未找到"领域错误
// 消息格式: "<Entity> Not Found using Id <id1>, <id2>"
func NewNotFoundError(entity string, ids ...string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: NotFoundMessage(entity, ids...),
		stack:   CaptureStack(3),
	}
}

// NotFoundMessage 生成统一的未找到错误信息，校验器也复用这个格式
func NotFoundMessage(entity string, ids ...string) string {
	return fmt.Sprintf("%s Not Found using Id %s", entity, strings.Join(ids, ", "))
}

// NewInvalidArgumentError 创建"参数无效"领域错误
func NewInvalidArgumentError(entity, message string) error {
	return &DomainError{
		Err:     ErrInvalidArgument,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewInvalidUUIDError ID 不是合法的 UUID
func NewInvalidUUIDError(value string) error {
	return &DomainError{
		Err:     ErrInvalidArgument,
		Entity:  "UUID",
		Message: fmt.Sprintf("ID must be a valid UUID: %q", value),
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// 字段级错误
// ============================================================================

// FieldErrors 字段名 → 错误信息列表
type FieldErrors map[string][]string

// String 按字段名排序输出，保证日志稳定
func (f FieldErrors) String() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: [%s]", field, strings.Join(f[field], "; ")))
	}
	return strings.Join(parts, ", ")
}

// EntityValidationError 实体校验错误，由用例层在检查 Notification 后返回
type EntityValidationError struct {
	Errors FieldErrors
}

// NewEntityValidationError 从字段错误创建校验错误
func NewEntityValidationError(errs FieldErrors) *EntityValidationError {
	return &EntityValidationError{Errors: errs}
}

func (e *EntityValidationError) Error() string {
	return "Entity Validation Error: " + e.Errors.String()
}

func (e *EntityValidationError) Unwrap() error { return ErrValidation }

// LoadEntityError Mapper 重建聚合时发现持久化数据不再合法
type LoadEntityError struct {
	Entity string
	Errors FieldErrors
	stack  []uintptr
}

// NewLoadEntityError 创建加载错误
func NewLoadEntityError(entity string, errs FieldErrors) *LoadEntityError {
	return &LoadEntityError{
		Entity: entity,
		Errors: errs,
		stack:  CaptureStack(3),
	}
}

func (e *LoadEntityError) Error() string {
	return fmt.Sprintf("%s not loaded: %s", e.Entity, e.Errors.String())
}

func (e *LoadEntityError) Unwrap() error { return ErrLoadEntity }

func (e *LoadEntityError) Stack() []string { return FormatStack(e.stack) }

// Stacker 可提供堆栈的错误接口，日志层统一提取
type Stacker interface {
	Stack() []string
}
