package usecase

import (
	"context"
	"errors"
	"fmt"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
)

type applicationUsecase struct {
	tx            domain.Transactor
	applications  domain.ApplicationRepository
	opportunities domain.OpportunityRepository
	employers     domain.EmployerProfileRepository
	notifier      domain.Notifier
	today         func() domain.Date
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	tx domain.Transactor,
	applications domain.ApplicationRepository,
	opportunities domain.OpportunityRepository,
	employers domain.EmployerProfileRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		tx:            tx,
		applications:  applications,
		opportunities: opportunities,
		employers:     employers,
		notifier:      notifier,
		today:         domain.Today,
	}
}

// Apply submits the caller's application. The deadline day itself is still open.
func (uc *applicationUsecase) Apply(ctx context.Context, actor domain.Actor, opportunityID int64, coverLetter string) (*domain.Application, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, apperror.Forbidden("Only youth can apply for opportunities")
	}

	o, err := uc.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, notFoundOr(err, "Opportunity not found")
	}
	if !o.IsActive {
		return nil, apperror.BadRequest("This opportunity is no longer accepting applications")
	}
	if o.DeadlinePassed(uc.today()) {
		return nil, apperror.BadRequest("The application deadline has passed")
	}

	app := &domain.Application{
		OpportunityID: o.ID,
		YouthID:       youth.AccountID(),
		Status:        domain.ApplicationStatusPending,
		CoverLetter:   coverLetter,
	}
	created, err := uc.applications.CreateIfAbsent(ctx, app)
	if err != nil {
		return nil, internal(err)
	}
	if !created {
		return nil, apperror.Conflict("You have already applied for this opportunity")
	}

	full, err := uc.applications.GetByID(ctx, app.ID)
	if err != nil {
		return app, nil
	}
	return full, nil
}

func (uc *applicationUsecase) MyApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applications.ListByYouth(ctx, youth.AccountID())
	if err != nil {
		return nil, internal(err)
	}
	return apps, nil
}

// EmployerApplications lists applications to every opportunity the caller posted.
func (uc *applicationUsecase) EmployerApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	if _, err := requireEmployer(actor); err != nil {
		return nil, apperror.Forbidden("Employer profile not found")
	}
	profile, err := uc.employers.GetByAccountID(ctx, actor.AccountID())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Forbidden("Employer profile not found")
	}
	if err != nil {
		return nil, internal(err)
	}

	apps, err := uc.applications.ListByEmployer(ctx, profile.ID)
	if err != nil {
		return nil, internal(err)
	}
	return apps, nil
}

// Get is visible to the applicant and to the employer who owns the opportunity.
func (uc *applicationUsecase) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Application, error) {
	app, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}

	switch a := actor.(type) {
	case domain.YouthActor:
		if app.YouthID == a.ID {
			return app, nil
		}
	case domain.EmployerActor:
		if app.EmployerAccountID == a.ID {
			return app, nil
		}
	}
	return nil, apperror.Forbidden("You do not have permission to view this application")
}

// UpdateStatus records the employer's decision. The previous status is read
// under a row lock in the same transaction as the write, and the applicant is
// emailed once after commit when the status moves to accepted or rejected.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	employer, err := requireEmployer(actor)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperror.FieldError("status", fmt.Sprintf("\"%s\" is not a valid choice.", status))
	}

	app, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	if app.EmployerAccountID != employer.ID {
		return nil, apperror.Forbidden("You can only update applications to your own opportunities")
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		previous, err := uc.applications.LockStatus(ctx, id)
		if err != nil {
			return notFoundOr(err, "Application not found")
		}
		if err := uc.applications.UpdateStatus(ctx, id, status); err != nil {
			return notFoundOr(err, "Application not found")
		}

		if previous != status && status.Decided() {
			notice := domain.ApplicationStatusNotice{
				Email:            app.YouthEmail,
				Name:             app.YouthName,
				OpportunityTitle: app.OpportunityTitle,
				CompanyName:      app.CompanyName,
				Status:           status,
			}
			uc.tx.AfterCommit(ctx, func(ctx context.Context) {
				uc.notifier.ApplicationStatusChanged(ctx, notice)
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		app.Status = status
		return app, nil
	}
	return updated, nil
}
