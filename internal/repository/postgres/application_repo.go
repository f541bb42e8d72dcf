package postgres

import (
	"context"
	"errors"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/database"

	"github.com/jackc/pgx/v5"
)

const applicationSelect = `
	SELECT a.id, a.opportunity_id, a.youth_id, a.status, a.cover_letter, a.applied_at, a.updated_at,
	       o.title, ep.company_name, ep.account_id,
	       COALESCE(NULLIF(y.first_name, ''), y.username) AS youth_name, y.email
	FROM applications a
	JOIN opportunities o ON o.id = a.opportunity_id
	JOIN employer_profiles ep ON ep.id = o.employer_id
	JOIN accounts y ON y.id = a.youth_id`

type applicationRepo struct {
	db database.DBTX
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db database.DBTX) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row interface{ Scan(dest ...any) error }, app *domain.Application) error {
	return row.Scan(
		&app.ID, &app.OpportunityID, &app.YouthID, &app.Status, &app.CoverLetter, &app.AppliedAt, &app.UpdatedAt,
		&app.OpportunityTitle, &app.CompanyName, &app.EmployerAccountID,
		&app.YouthName, &app.YouthEmail,
	)
}

// CreateIfAbsent inserts in one statement against the (opportunity_id,
// youth_id) unique key, so two concurrent applies yield one row.
func (r *applicationRepo) CreateIfAbsent(ctx context.Context, app *domain.Application) (bool, error) {
	query := `
		INSERT INTO applications (opportunity_id, youth_id, status, cover_letter)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (opportunity_id, youth_id) DO NOTHING
		RETURNING id, applied_at, updated_at`

	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		app.OpportunityID, app.YouthID, app.Status, app.CoverLetter,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapError(err)
	}
	return true, nil
}

// GetByID retrieves an application with its opportunity, employer and applicant data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	row := database.Conn(ctx, r.db).QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id)
	if err := scanApplication(row, &app); err != nil {
		return nil, mapError(err)
	}
	return &app, nil
}

func (r *applicationRepo) ListByYouth(ctx context.Context, youthID int64) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.youth_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, youthID)
}

// ListByEmployer returns applications to every opportunity the employer profile owns
func (r *applicationRepo) ListByEmployer(ctx context.Context, employerProfileID int64) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE o.employer_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, employerProfileID)
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) LockStatus(ctx context.Context, id int64) (domain.ApplicationStatus, error) {
	var status domain.ApplicationStatus
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id,
	).Scan(&status)
	if err != nil {
		return "", mapError(err)
	}
	return status, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	return expectOne(database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`, id, status))
}
