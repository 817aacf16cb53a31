package services

import (
	"context"

	"github.com/ssafuel/station-gateway/pkg/pg"
)

type HealthService struct {
	db *pg.DB
}

func NewHealthService(db *pg.DB) *HealthService {
	return &HealthService{db: db}
}

// Get pings the read database. The gateway is unhealthy when it cannot
// answer portal queries.
func (s *HealthService) Get() error {
	sqlDB, err := s.db.Read(context.Background()).DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
