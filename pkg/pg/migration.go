package pg

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/ssafuel/station-gateway/pkg/logger"
)

func Migrate(cfg Config, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return err
	}
	defer db.Close()

	if err = goose.Up(db, dir); err != nil {
		logger.Fatal(err)
	}

	return nil
}
