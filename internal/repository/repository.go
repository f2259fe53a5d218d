package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a referenced entity does not exist. Services
// and handlers test for it with errors.Is.
var ErrNotFound = errors.New("entity not found")

// notFound translates pgx's no-rows sentinel into the repository error.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
