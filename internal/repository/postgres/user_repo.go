package postgres

import (
	"context"
	"time"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/database"
)

const accountColumns = `id, username, email, first_name, last_name, role, phone_number, location,
	password_hash, is_active, last_login_at, date_joined, updated_at`

type accountRepo struct {
	db database.DBTX
}

func NewAccountRepository(db database.DBTX) domain.AccountRepository {
	return &accountRepo{db: db}
}

func scanAccount(row interface{ Scan(dest ...any) error }, a *domain.Account) error {
	return row.Scan(
		&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Role, &a.PhoneNumber, &a.Location,
		&a.PasswordHash, &a.IsActive, &a.LastLoginAt, &a.DateJoined, &a.UpdatedAt,
	)
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (username, email, first_name, last_name, role, phone_number, location, password_hash, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id, date_joined, updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		a.Username, a.Email, a.FirstName, a.LastName, a.Role, a.PhoneNumber, a.Location, a.PasswordHash, a.IsActive,
	).Scan(&a.ID, &a.DateJoined, &a.UpdatedAt)
	return mapError(err)
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	if err := scanAccount(database.Conn(ctx, r.db).QueryRow(ctx, query, id), &a); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *accountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	if err := scanAccount(database.Conn(ctx, r.db).QueryRow(ctx, query, username), &a); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *accountRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	return expectOne(database.Conn(ctx, r.db).Exec(ctx, query, id, passwordHash))
}

func (r *accountRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE accounts SET last_login_at = $2 WHERE id = $1`
	return expectOne(database.Conn(ctx, r.db).Exec(ctx, query, id, at))
}

type userProfileRepo struct {
	db database.DBTX
}

func NewUserProfileRepository(db database.DBTX) domain.UserProfileRepository {
	return &userProfileRepo{db: db}
}

func (r *userProfileRepo) Create(ctx context.Context, accountID int64) (*domain.UserProfile, error) {
	p := domain.UserProfile{AccountID: accountID}
	query := `INSERT INTO user_profiles (account_id) VALUES ($1) RETURNING id, created_at`
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, accountID).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *userProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.UserProfile, error) {
	query := `SELECT id, account_id, bio, date_of_birth, created_at FROM user_profiles WHERE account_id = $1`
	var p domain.UserProfile
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.Bio, &p.DateOfBirth, &p.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *userProfileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	query := `UPDATE user_profiles SET bio = $2, date_of_birth = $3, updated_at = NOW() WHERE id = $1`
	return expectOne(database.Conn(ctx, r.db).Exec(ctx, query, p.ID, p.Bio, p.DateOfBirth))
}

type refreshTokenRepo struct {
	db database.DBTX
}

func NewRefreshTokenRepository(db database.DBTX) domain.RefreshTokenRepository {
	return &refreshTokenRepo{db: db}
}

func (r *refreshTokenRepo) Create(ctx context.Context, jti string, accountID int64, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (jti, account_id, expires_at) VALUES ($1, $2, $3)`
	_, err := database.Conn(ctx, r.db).Exec(ctx, query, jti, accountID, expiresAt)
	return mapError(err)
}

func (r *refreshTokenRepo) IsActive(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM refresh_tokens WHERE jti = $1 AND revoked_at IS NULL AND expires_at > NOW()
	)`
	var active bool
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, jti).Scan(&active); err != nil {
		return false, mapError(err)
	}
	return active, nil
}

// Revoke is idempotent; revoking an unknown or revoked jti is not an error.
func (r *refreshTokenRepo) Revoke(ctx context.Context, jti string) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW() WHERE jti = $1 AND revoked_at IS NULL`
	_, err := database.Conn(ctx, r.db).Exec(ctx, query, jti)
	return mapError(err)
}

func (r *refreshTokenRepo) RevokeAllForAccount(ctx context.Context, accountID int64) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW() WHERE account_id = $1 AND revoked_at IS NULL`
	_, err := database.Conn(ctx, r.db).Exec(ctx, query, accountID)
	return mapError(err)
}
