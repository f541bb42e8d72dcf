package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Decided reports whether the status is a final decision the applicant is told about.
func (s ApplicationStatus) Decided() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application is a youth's submission against one opportunity.
type Application struct {
	ID            int64             `json:"id"`
	OpportunityID int64             `json:"opportunity_id"`
	YouthID       int64             `json:"youth_id"`
	Status        ApplicationStatus `json:"status"`
	CoverLetter   string            `json:"cover_letter"`
	AppliedAt     time.Time         `json:"applied_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Joined data for responses and notifications
	OpportunityTitle  string `json:"opportunity_title,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`
	YouthName         string `json:"youth_name,omitempty"`
	YouthEmail        string `json:"youth_email,omitempty"`
	EmployerAccountID int64  `json:"-"`
}

type ApplicationRepository interface {
	// CreateIfAbsent inserts app unless the (opportunity, youth) pair exists.
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, app *Application) (bool, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByYouth(ctx context.Context, youthID int64) ([]Application, error)
	ListByEmployer(ctx context.Context, employerProfileID int64) ([]Application, error)
	// LockStatus reads the current status and locks the row for the
	// enclosing transaction.
	LockStatus(ctx context.Context, id int64) (ApplicationStatus, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, opportunityID int64, coverLetter string) (*Application, error)
	MyApplications(ctx context.Context, actor Actor) ([]Application, error)
	EmployerApplications(ctx context.Context, actor Actor) ([]Application, error)
	Get(ctx context.Context, actor Actor, id int64) (*Application, error)
	UpdateStatus(ctx context.Context, actor Actor, id int64, status ApplicationStatus) (*Application, error)
}
