package shared

import (
	"context"
	"errors"
	"testing"

	"catalog/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	existing map[string]struct{}
	err      error
}

func (c stubChecker) ExistsByID(_ context.Context, ids []shared.UUID) (shared.ExistsResult[shared.UUID], error) {
	if c.err != nil {
		return shared.ExistsResult[shared.UUID]{}, c.err
	}
	return shared.PartitionIDs(ids, c.existing), nil
}

func TestParseIDs(t *testing.T) {
	n := shared.NewNotification()
	valid := shared.NewUUID()

	ids := ParseIDs(n, "categories_id", []string{valid.String(), "nope"}, shared.ParseUUID)
	assert.Equal(t, []shared.UUID{valid}, ids)
	assert.Equal(t, []string{`ID must be a valid UUID: "nope"`}, n.Errors()["categories_id"])
}

func TestValidateIDsExist(t *testing.T) {
	ctx := context.Background()
	known, missing := shared.NewUUID(), shared.NewUUID()
	checker := stubChecker{existing: map[string]struct{}{known.String(): {}}}

	n := shared.NewNotification()
	require.NoError(t, ValidateIDsExist[shared.UUID](ctx, checker, "Category", "categories_id", []shared.UUID{known, missing}, n))
	assert.Equal(t, []string{"Category Not Found using Id " + missing.String()}, n.Errors()["categories_id"])

	n = shared.NewNotification()
	require.NoError(t, ValidateIDsExist[shared.UUID](ctx, checker, "Category", "categories_id", nil, n))
	assert.Equal(t, []string{"categories_id should not be empty"}, n.Errors()["categories_id"])

	// 字段已有解析错误时不再追加“为空”
	n = shared.NewNotification()
	n.AddError("categories_id", "bad id")
	require.NoError(t, ValidateIDsExist[shared.UUID](ctx, checker, "Category", "categories_id", nil, n))
	assert.Equal(t, []string{"bad id"}, n.Errors()["categories_id"])

	boom := errors.New("db down")
	err := ValidateIDsExist[shared.UUID](ctx, stubChecker{err: boom}, "Category", "categories_id", []shared.UUID{known}, shared.NewNotification())
	assert.ErrorIs(t, err, boom)
}
