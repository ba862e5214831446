package engine

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/cafe/internal/platform/errors"
	"github.com/louisbranch/cafe/internal/services/tab/domain/tab"
	"github.com/louisbranch/cafe/internal/services/tab/storage"
)

var (
	// ErrStoreRequired indicates a handler without an event store.
	ErrStoreRequired = errors.New("event store is required")
	// ErrCommandRequired indicates a nil command.
	ErrCommandRequired = errors.New("command is required")
	// ErrTabNotFound indicates a tab with no recorded events.
	ErrTabNotFound = errors.New("tab not found")
)

// DomainError translates engine, storage and rejection errors into
// structured platform errors. Errors that are already structured pass
// through unchanged.
func DomainError(err error) error {
	if err == nil {
		return nil
	}
	var structured *apperrors.Error
	if errors.As(err, &structured) {
		return err
	}

	var rejection tab.CommandError
	if errors.As(err, &rejection) {
		return FromCommandError(rejection)
	}
	switch {
	case errors.Is(err, ErrTabNotFound):
		return apperrors.Wrap(apperrors.CodeTabNotFound, "tab not found", err)
	case errors.Is(err, storage.ErrVersionConflict):
		return apperrors.Wrap(apperrors.CodeTabVersionConflict, "tab was modified concurrently, retry the request", err)
	case errors.Is(err, storage.ErrTabIDRequired), errors.Is(err, ErrCommandRequired):
		return apperrors.Wrap(apperrors.CodeInvalidArgument, err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apperrors.Wrap(apperrors.CodeInternal, "internal error", err)
	}
}

// FromCommandError maps a tab rejection to its platform error.
func FromCommandError(rejection tab.CommandError) *apperrors.Error {
	code := apperrors.Code(rejection.Code())
	switch code {
	case apperrors.CodeTabNotOpen, apperrors.CodeTabDrinksNotOutstanding, apperrors.CodeTabFoodNotOutstanding:
	default:
		code = apperrors.CodeInternal
	}
	return apperrors.Wrap(code, rejection.Error(), rejection)
}
