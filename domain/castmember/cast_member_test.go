package castmember

import (
	"testing"

	"catalog/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	m := Create(CreateCommand{Name: "Quentin", Type: TypeDirector})

	assert.False(t, m.Notification().HasErrors())
	assert.Equal(t, "Quentin", m.Name())
	assert.Equal(t, TypeDirector, m.Type())
	assert.Equal(t, "director", m.Type().String())
}

func TestCreate_InvalidType(t *testing.T) {
	m := Create(CreateCommand{Name: "Someone", Type: Type(7)})

	assert.Equal(t, []string{"Invalid cast member type: 7"}, m.Notification().Errors()["type"])
	assert.False(t, m.Notification().FieldHasErrors("name"))
}

func TestChangeNameValidatesOnlyName(t *testing.T) {
	m := Rebuild(ReconstructionDTO{ID: NewCastMemberID(), Name: "x", Type: Type(0)})

	m.ChangeName("")
	assert.True(t, m.Notification().FieldHasErrors("name"))
	assert.False(t, m.Notification().FieldHasErrors("type"))

	m.ChangeType(TypeActor)
	assert.Equal(t, TypeActor, m.Type())
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(2)
	require.NoError(t, err)
	assert.Equal(t, TypeActor, typ)

	_, err = ParseType(3)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestMatchesFilter(t *testing.T) {
	m := Create(CreateCommand{Name: "Uma", Type: TypeActor})
	director := TypeDirector
	actor := TypeActor

	assert.True(t, MatchesFilter(m, Filter{Name: "um"}))
	assert.True(t, MatchesFilter(m, Filter{Name: "um", Type: &actor}))
	assert.False(t, MatchesFilter(m, Filter{Name: "um", Type: &director}))
	assert.False(t, MatchesFilter(m, Filter{Name: "zz"}))
	assert.True(t, Filter{}.IsEmpty())
}
