package po

import (
	"time"

	"catalog/domain/castmember"
	"catalog/domain/shared"
)

// CastMemberPO CastMember persistence object
type CastMemberPO struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:255;not null"`
	Type      int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;precision:6"`
}

// TableName Specify table name
func (CastMemberPO) TableName() string {
	return "cast_members"
}

func FromCastMemberDomain(m *castmember.CastMember) *CastMemberPO {
	return &CastMemberPO{
		ID:        m.ID().String(),
		Name:      m.Name(),
		Type:      int(m.Type()),
		CreatedAt: m.CreatedAt(),
	}
}

func (p *CastMemberPO) ToDomain() (*castmember.CastMember, error) {
	structural := shared.NewNotification()
	id, err := castmember.ParseCastMemberID(p.ID)
	if err != nil {
		structural.AddError("id", err.Error())
	}
	typ, err := castmember.ParseType(p.Type)
	if err != nil {
		structural.AddError("type", err.Error())
	}

	m := castmember.Rebuild(castmember.ReconstructionDTO{
		ID:        id,
		Name:      p.Name,
		Type:      typ,
		CreatedAt: p.CreatedAt.UTC(),
	})
	// type 的结构错误已经记录，这里只重新校验 name
	m.Validate("name")

	if err := loadResult(castmember.EntityName, structural, m.Notification()); err != nil {
		return nil, err
	}
	return m, nil
}
