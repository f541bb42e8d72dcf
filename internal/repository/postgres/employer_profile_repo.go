package postgres

import (
	"context"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/database"
)

type employerProfileRepo struct {
	db database.DBTX
}

// NewEmployerProfileRepository creates a new employer profile repository
func NewEmployerProfileRepository(db database.DBTX) domain.EmployerProfileRepository {
	return &employerProfileRepo{db: db}
}

func (r *employerProfileRepo) Create(ctx context.Context, p *domain.EmployerProfile) error {
	query := `
		INSERT INTO employer_profiles (account_id, company_name, company_description, industry,
		       company_website, company_email, company_phone, county, city, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, verified, created_at, updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		p.AccountID, p.CompanyName, p.CompanyDescription, p.Industry,
		p.CompanyWebsite, p.CompanyEmail, p.CompanyPhone, p.County, p.City, p.Address,
	).Scan(&p.ID, &p.Verified, &p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

// GetByAccountID retrieves the profile owned by an employer account
func (r *employerProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.EmployerProfile, error) {
	query := `
		SELECT id, account_id, company_name, company_description, industry,
		       company_website, company_email, company_phone, county, city, address,
		       verified, created_at, updated_at
		FROM employer_profiles
		WHERE account_id = $1`

	var p domain.EmployerProfile
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.CompanyName, &p.CompanyDescription, &p.Industry,
		&p.CompanyWebsite, &p.CompanyEmail, &p.CompanyPhone, &p.County, &p.City, &p.Address,
		&p.Verified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// Update writes the editable fields; verified is never written here.
func (r *employerProfileRepo) Update(ctx context.Context, p *domain.EmployerProfile) error {
	query := `
		UPDATE employer_profiles SET
			company_name = $2, company_description = $3, industry = $4,
			company_website = $5, company_email = $6, company_phone = $7,
			county = $8, city = $9, address = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		p.ID, p.CompanyName, p.CompanyDescription, p.Industry,
		p.CompanyWebsite, p.CompanyEmail, p.CompanyPhone, p.County, p.City, p.Address,
	).Scan(&p.UpdatedAt)
	return mapError(err)
}
