/*
Package castmember CastMember 聚合（导演 / 演员）
*/
package castmember

import (
	"fmt"
	"time"

	"catalog/domain/shared"
)

const EntityName = "CastMember"

const nameMaxLength = 255

// CastMemberID 演职人员标识
type CastMemberID struct {
	shared.UUID
}

func NewCastMemberID() CastMemberID {
	return CastMemberID{UUID: shared.NewUUID()}
}

func ParseCastMemberID(value string) (CastMemberID, error) {
	id, err := shared.ParseUUID(value)
	if err != nil {
		return CastMemberID{}, err
	}
	return CastMemberID{UUID: id}, nil
}

// Type 演职人员类型
type Type int

const (
	TypeDirector Type = 1
	TypeActor    Type = 2
)

// ParseType 校验类型取值
func ParseType(value int) (Type, error) {
	t := Type(value)
	if !t.Valid() {
		return 0, shared.NewInvalidArgumentError(EntityName, fmt.Sprintf("Invalid cast member type: %d", value))
	}
	return t, nil
}

func (t Type) Valid() bool {
	return t == TypeDirector || t == TypeActor
}

func (t Type) String() string {
	switch t {
	case TypeDirector:
		return "director"
	case TypeActor:
		return "actor"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// CastMember 演职人员聚合根
type CastMember struct {
	shared.BaseAggregate

	id        CastMemberID
	name      string
	typ       Type
	createdAt time.Time
}

type CreateCommand struct {
	Name string
	Type Type
}

func Create(cmd CreateCommand) *CastMember {
	m := &CastMember{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            NewCastMemberID(),
		name:          cmd.Name,
		typ:           cmd.Type,
		createdAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	m.Validate()
	return m
}

// ReconstructionDTO 仅供仓储/Mapper 使用
type ReconstructionDTO struct {
	ID        CastMemberID
	Name      string
	Type      Type
	CreatedAt time.Time
}

func Rebuild(dto ReconstructionDTO) *CastMember {
	return &CastMember{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            dto.ID,
		name:          dto.Name,
		typ:           dto.Type,
		createdAt:     dto.CreatedAt,
	}
}

func (m *CastMember) ChangeName(name string) {
	m.name = name
	m.Validate("name")
}

func (m *CastMember) ChangeType(t Type) {
	m.typ = t
	m.Validate("type")
}

// Validate 校验指定字段，不传字段时校验全部
func (m *CastMember) Validate(fields ...string) bool {
	n := m.Notification()
	check := func(field string) bool {
		if len(fields) == 0 {
			return true
		}
		for _, f := range fields {
			if f == field {
				return true
			}
		}
		return false
	}
	if check("name") {
		if m.name == "" {
			n.AddError("name", "name should not be empty")
		}
		if len([]rune(m.name)) > nameMaxLength {
			n.AddError("name", "name must be shorter than or equal to 255 characters")
		}
	}
	if check("type") && !m.typ.Valid() {
		n.AddError("type", fmt.Sprintf("Invalid cast member type: %d", int(m.typ)))
	}
	return !n.HasErrors()
}

func (m *CastMember) ID() CastMemberID     { return m.id }
func (m *CastMember) AggregateID() string  { return m.id.String() }
func (m *CastMember) Name() string         { return m.name }
func (m *CastMember) Type() Type           { return m.typ }
func (m *CastMember) CreatedAt() time.Time { return m.createdAt }

var _ shared.AggregateRoot = (*CastMember)(nil)
