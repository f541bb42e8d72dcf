package domain

import (
	"context"
	"time"
)

// Account is the authenticatable identity.
type Account struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         Role       `json:"user_type"`
	PhoneNumber  *string    `json:"phone_number"`
	Location     *string    `json:"location"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"-"`
	LastLoginAt  *time.Time `json:"-"`
	DateJoined   time.Time  `json:"date_joined"`
	UpdatedAt    time.Time  `json:"-"`
}

// DisplayName is the first name, falling back to the username.
func (a *Account) DisplayName() string {
	if a.FirstName != "" {
		return a.FirstName
	}
	return a.Username
}

// UserProfile is the base profile every account gets at registration.
type UserProfile struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"-"`
	User        *Account  `json:"user,omitempty"`
	Bio         *string   `json:"bio"`
	DateOfBirth *Date     `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
}

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	User    *Account  `json:"user"`
	Tokens  TokenPair `json:"tokens"`
	Message string    `json:"message,omitempty"`
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Password2   string
	Role        Role
	FirstName   string
	LastName    string
	PhoneNumber *string
	Location    *string
}

type UpdateProfileInput struct {
	Bio         *string
	DateOfBirth *Date
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type UserProfileRepository interface {
	Create(ctx context.Context, accountID int64) (*UserProfile, error)
	GetByAccountID(ctx context.Context, accountID int64) (*UserProfile, error)
	Update(ctx context.Context, profile *UserProfile) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, jti string, accountID int64, expiresAt time.Time) error
	// IsActive reports whether jti exists, is unrevoked and unexpired.
	IsActive(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
	RevokeAllForAccount(ctx context.Context, accountID int64) error
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, actor Actor, oldPassword, newPassword string) error
	// Authenticate resolves an access token to the caller.
	Authenticate(ctx context.Context, accessToken string) (Actor, error)
	GetMe(ctx context.Context, actor Actor) (*Account, error)
	GetProfile(ctx context.Context, actor Actor) (*UserProfile, error)
	UpdateProfile(ctx context.Context, actor Actor, input UpdateProfileInput) (*UserProfile, error)
}
