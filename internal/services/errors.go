package services

import (
	stderrors "errors"
	"fmt"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/repository"
)

// appError maps domain and storage errors onto API errors. resource and id
// name the entity for not-found responses.
func appError(err error, resource string, id any) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NewNotFoundError(resource, id)
	case stderrors.Is(err, flashcard.ErrInvalidRating):
		return errors.NewInvalidRatingError(err)
	case stderrors.Is(err, flashcard.ErrScheduling):
		return errors.NewSchedulingError(fmt.Sprint(id), err)
	case stderrors.Is(err, repository.ErrPersistence):
		return errors.NewPersistenceError(err)
	default:
		return errors.NewInternalError(err)
	}
}
