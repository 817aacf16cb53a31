package services

import (
	"reflect"
	"sync"
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
		&repository.TransactionEntity{},
		&repository.StationEntity{},
		&repository.BowserEntity{},
		&repository.StationaryEntity{},
		&repository.TankEntity{},
		&repository.AssignmentEntity{},
		&repository.AssetBarcodeEntity{},
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

// recordingPublisher captures config pushes for assertions.
type recordingPublisher struct {
	mu    sync.Mutex
	calls []configPush
}

type configPush struct {
	mqttID string
	admFlg int
	usrFlg int
	devtyp string
}

func (p *recordingPublisher) PublishConfig(deviceMqttID string, admFlg, usrFlg int, devtyp string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, configPush{deviceMqttID, admFlg, usrFlg, devtyp})
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
