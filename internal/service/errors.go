package service

import (
	"errors"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
)

// domainErr translates repository sentinels into domain sentinels so the
// API layer never has to know about the storage package.
func domainErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return app_errors.ErrNotFound
	default:
		return err
	}
}
