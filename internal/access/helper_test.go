package access

import (
	"reflect"
	"testing"

	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.StationEntity{},
		&repository.AssignmentEntity{},
		&repository.SuperAdminEntity{},
		&repository.AdminEntity{},
		&repository.UserEntity{},
		&repository.AuthTokenEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	v := reflect.ValueOf(pgDB).Elem()
	for _, field := range []string{"read", "write"} {
		f := v.FieldByName(field)
		f = reflect.NewAt(f.Type(), f.Addr().UnsafePointer()).Elem()
		f.Set(reflect.ValueOf(db))
	}
	return pgDB
}
