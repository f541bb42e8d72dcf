package usecase

import (
	"context"
	"errors"
	"strings"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
)

type employerUsecase struct {
	profiles domain.EmployerProfileRepository
	accounts domain.AccountRepository
}

// NewEmployerUsecase creates a new employer profile usecase
func NewEmployerUsecase(profiles domain.EmployerProfileRepository, accounts domain.AccountRepository) domain.EmployerUsecase {
	return &employerUsecase{profiles: profiles, accounts: accounts}
}

// CreateProfile creates the caller's company profile. An account has at most one.
func (uc *employerUsecase) CreateProfile(ctx context.Context, actor domain.Actor, in domain.EmployerProfileInput) (*domain.EmployerProfile, error) {
	employer, err := requireEmployer(actor)
	if err != nil {
		return nil, err
	}

	profile := &domain.EmployerProfile{
		AccountID: employer.AccountID(),
		Industry:  domain.IndustryOther,
	}
	in.Apply(profile)
	if strings.TrimSpace(profile.CompanyName) == "" {
		return nil, apperror.FieldError("company_name", "This field is required.")
	}

	if err := uc.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Employer profile already exists")
		}
		return nil, internal(err)
	}
	uc.attachUser(ctx, profile)
	return profile, nil
}

func (uc *employerUsecase) GetProfile(ctx context.Context, actor domain.Actor) (*domain.EmployerProfile, error) {
	profile, err := uc.profiles.GetByAccountID(ctx, actor.AccountID())
	if err != nil {
		return nil, notFoundOr(err, "Employer profile not found")
	}
	uc.attachUser(ctx, profile)
	return profile, nil
}

// UpdateProfile applies a partial update. Verification status is not client-writable.
func (uc *employerUsecase) UpdateProfile(ctx context.Context, actor domain.Actor, in domain.EmployerProfileInput) (*domain.EmployerProfile, error) {
	profile, err := uc.profiles.GetByAccountID(ctx, actor.AccountID())
	if err != nil {
		return nil, notFoundOr(err, "Employer profile not found")
	}

	in.Apply(profile)
	if strings.TrimSpace(profile.CompanyName) == "" {
		return nil, apperror.FieldError("company_name", "This field may not be blank.")
	}
	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, notFoundOr(err, "Employer profile not found")
	}
	uc.attachUser(ctx, profile)
	return profile, nil
}

func (uc *employerUsecase) attachUser(ctx context.Context, profile *domain.EmployerProfile) {
	if account, err := uc.accounts.GetByID(ctx, profile.AccountID); err == nil {
		profile.User = account
	}
}
