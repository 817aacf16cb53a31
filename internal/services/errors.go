package services

import (
	"errors"

	"github.com/ssafuel/station-gateway/internal/repository"
)

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
