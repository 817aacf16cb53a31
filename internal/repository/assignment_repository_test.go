package repository

import (
	"context"
	"testing"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepository_Replace(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	first, err := repo.Replace(ctx, &model.Assignment{
		UserID: 1, AdminID: 10, StationID: "ST001", AdminName: strPtr("Dispatch"),
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	t.Run("reassign replaces the prior row", func(t *testing.T) {
		second, err := repo.Replace(ctx, &model.Assignment{
			UserID: 2, AdminID: 10, StationID: "ST001",
		})
		require.NoError(t, err)

		current, err := repo.GetByStation(ctx, "ST001")
		require.NoError(t, err)
		assert.Equal(t, second.ID, current.ID)
		assert.Equal(t, int64(2), current.UserID)

		var total int64
		require.NoError(t, repo.Read(ctx).Model(&AssignmentEntity{}).
			Where("station_id = ?", "ST001").Count(&total).Error)
		assert.Equal(t, int64(1), total)
	})

	t.Run("exists for user and station", func(t *testing.T) {
		ok, err := repo.ExistsForUserStation(ctx, 2, "ST001")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsForUserStation(ctx, 1, "ST001")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestAssignmentRepository_HasActiveUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db.DB)
	accounts := NewAccountRepository(db.DB)
	ctx := context.Background()

	active, err := accounts.CreateUser(ctx, &model.User{
		Name: "u1", Email: "u1@example.com", Password: "x", PortalID: "U001",
		Status: model.AccountStatusActive,
	})
	require.NoError(t, err)
	suspended, err := accounts.CreateUser(ctx, &model.User{
		Name: "u2", Email: "u2@example.com", Password: "x", PortalID: "U002",
		Status: model.AccountStatusInactive,
	})
	require.NoError(t, err)

	_, err = repo.Replace(ctx, &model.Assignment{UserID: active.ID, AdminID: 1, StationID: "ST001"})
	require.NoError(t, err)
	_, err = repo.Replace(ctx, &model.Assignment{UserID: suspended.ID, AdminID: 1, StationID: "ST002"})
	require.NoError(t, err)

	t.Run("active user", func(t *testing.T) {
		ok, err := repo.HasActiveUser(ctx, "ST001")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("suspended user", func(t *testing.T) {
		ok, err := repo.HasActiveUser(ctx, "ST002")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unassigned station", func(t *testing.T) {
		ok, err := repo.HasActiveUser(ctx, "ST003")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("status stored with mixed case", func(t *testing.T) {
		cased, err := accounts.CreateUser(ctx, &model.User{
			Name: "u3", Email: "u3@example.com", Password: "x", PortalID: "U003",
			Status: model.AccountStatus("Active"),
		})
		require.NoError(t, err)
		_, err = repo.Replace(ctx, &model.Assignment{UserID: cased.ID, AdminID: 1, StationID: "ST004"})
		require.NoError(t, err)

		ok, err := repo.HasActiveUser(ctx, "ST004")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestAssignmentRepository_HasActiveAdmin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db.DB)
	stations := NewStationRepository(db.DB)
	accounts := NewAccountRepository(db.DB)
	ctx := context.Background()

	active, err := accounts.CreateAdmin(ctx, &model.Admin{
		Name: "a1", Email: "a1@example.com", Password: "x", PortalID: "P001",
		Status: model.AccountStatus("ACTIVE"),
	})
	require.NoError(t, err)
	suspended, err := accounts.CreateAdmin(ctx, &model.Admin{
		Name: "a2", Email: "a2@example.com", Password: "x", PortalID: "P002",
		Status: model.AccountStatusInactive,
	})
	require.NoError(t, err)
	user, err := accounts.CreateUser(ctx, &model.User{
		Name: "u9", Email: "u9@example.com", Password: "x", PortalID: "U009",
		Status: model.AccountStatusActive,
	})
	require.NoError(t, err)

	// ST003 is owned by an active admin but carries no assignment. The admin
	// flag must come from the assignment row, so ST003 reads inactive.
	_, err = stations.Create(ctx, &model.Station{
		Name: "s3", StationID: "ST003", Location: "l",
		CreatedByAdminID: &active.ID, Status: model.StationStatusActive,
	})
	require.NoError(t, err)

	_, err = repo.Replace(ctx, &model.Assignment{UserID: user.ID, AdminID: active.ID, StationID: "ST001"})
	require.NoError(t, err)
	_, err = repo.Replace(ctx, &model.Assignment{UserID: user.ID, AdminID: suspended.ID, StationID: "ST002"})
	require.NoError(t, err)

	t.Run("assignment linked to active admin", func(t *testing.T) {
		ok, err := repo.HasActiveAdmin(ctx, "ST001")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("assignment linked to suspended admin", func(t *testing.T) {
		ok, err := repo.HasActiveAdmin(ctx, "ST002")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("station with an owner but no assignment", func(t *testing.T) {
		ok, err := repo.HasActiveAdmin(ctx, "ST003")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
