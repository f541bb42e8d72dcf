package usecase

import (
	"errors"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
)

// notFoundOr maps a missing row to a 404 with msg and anything else to a 500.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return internal(err)
}

// internal wraps err as a 500 unless it is already an AppError.
func internal(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

func requireYouth(actor domain.Actor) (domain.YouthActor, error) {
	y, ok := actor.(domain.YouthActor)
	if !ok {
		return domain.YouthActor{}, apperror.Forbidden("Only youth accounts can perform this action")
	}
	return y, nil
}

func requireEmployer(actor domain.Actor) (domain.EmployerActor, error) {
	e, ok := actor.(domain.EmployerActor)
	if !ok {
		return domain.EmployerActor{}, apperror.Forbidden("Only employers can perform this action")
	}
	return e, nil
}
