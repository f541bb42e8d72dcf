package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
	"opportunityhub-backend/pkg/auth"
	"opportunityhub-backend/pkg/logger"
	"opportunityhub-backend/pkg/validation"

	"go.uber.org/zap"
)

const errInvalidCredentials = "Invalid credentials"

type authUsecase struct {
	tx        domain.Transactor
	accounts  domain.AccountRepository
	profiles  domain.UserProfileRepository
	refreshes domain.RefreshTokenRepository
	tokens    *auth.TokenManager
	notifier  domain.Notifier
	now       func() time.Time
}

func NewAuthUsecase(
	tx domain.Transactor,
	accounts domain.AccountRepository,
	profiles domain.UserProfileRepository,
	refreshes domain.RefreshTokenRepository,
	tokens *auth.TokenManager,
	notifier domain.Notifier,
) domain.AuthUsecase {
	return &authUsecase{
		tx:        tx,
		accounts:  accounts,
		profiles:  profiles,
		refreshes: refreshes,
		tokens:    tokens,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Register creates the account and its profile scaffold together. The welcome
// email goes out only once both rows are committed.
func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	account := &domain.Account{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PhoneNumber:  in.PhoneNumber,
		Location:     in.Location,
		PasswordHash: hash,
		IsActive:     true,
	}

	var pair *domain.TokenPair
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.accounts.Create(ctx, account); err != nil {
			return duplicateAccount(err)
		}
		if _, err := u.profiles.Create(ctx, account.ID); err != nil {
			return internal(err)
		}
		issued, err := u.issueTokens(ctx, account)
		if err != nil {
			return err
		}
		pair = issued

		registered := *account
		u.tx.AfterCommit(ctx, func(ctx context.Context) {
			u.notifier.Welcome(ctx, &registered)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		User:    account,
		Tokens:  *pair,
		Message: "User registered successfully",
	}, nil
}

func validateRegistration(in domain.RegisterInput) error {
	fields := map[string][]string{}
	required := map[string]string{
		"username":   in.Username,
		"email":      in.Email,
		"password":   in.Password,
		"password2":  in.Password2,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = append(fields[name], "This field is required.")
		}
	}
	if !in.Role.Valid() {
		fields["user_type"] = append(fields["user_type"], "Must be one of: youth, employer.")
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields)
	}

	if in.Password != in.Password2 {
		return apperror.FieldError("password", "Password fields didn't match.")
	}

	problems := validation.ValidatePassword(in.Password, validation.UserAttributes{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if len(problems) > 0 {
		return apperror.Validation("Validation failed", map[string][]string{"password": problems})
	}
	return nil
}

// duplicateAccount turns a unique violation into a field-keyed error.
func duplicateAccount(err error) error {
	var uv *domain.UniqueViolation
	if !errors.As(err, &uv) {
		return internal(err)
	}
	if strings.Contains(uv.Constraint, "email") {
		return apperror.FieldError("email", "A user with that email already exists.")
	}
	return apperror.FieldError("username", "A user with that username already exists.")
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperror.BadRequest("Please provide both username and password")
	}

	account, err := u.accounts.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Unauthorized(errInvalidCredentials)
	}
	if err != nil {
		return nil, internal(err)
	}
	if !auth.CheckPassword(account.PasswordHash, password) || !account.IsActive {
		return nil, apperror.Unauthorized(errInvalidCredentials)
	}

	pair, err := u.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := u.accounts.UpdateLastLogin(ctx, account.ID, now); err != nil {
		logger.Log.Warn("Failed to record last login", zap.Int64("account_id", account.ID), zap.Error(err))
	} else {
		account.LastLoginAt = &now
	}

	return &domain.AuthResult{
		User:    account,
		Tokens:  *pair,
		Message: "Login successful",
	}, nil
}

// Refresh rotates the refresh token: the presented jti is revoked and a new
// pair is issued.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := u.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Token is invalid or expired")
	}

	var pair *domain.TokenPair
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := u.refreshes.IsActive(ctx, claims.ID)
		if err != nil {
			return internal(err)
		}
		if !active {
			return apperror.Unauthorized("Token is invalid or expired")
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return apperror.Unauthorized("Token is invalid or expired")
		}
		account, err := u.accounts.GetByID(ctx, accountID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && !account.IsActive) {
			return apperror.Unauthorized("User not found or inactive")
		}
		if err != nil {
			return internal(err)
		}

		if err := u.refreshes.Revoke(ctx, claims.ID); err != nil {
			return internal(err)
		}
		pair, err = u.issueTokens(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the refresh token. An empty token has nothing to revoke.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := u.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return apperror.BadRequest("Invalid token")
	}
	if err := u.refreshes.Revoke(ctx, claims.ID); err != nil {
		return internal(err)
	}
	return nil
}

// ChangePassword also revokes every outstanding refresh token of the account.
func (u *authUsecase) ChangePassword(ctx context.Context, actor domain.Actor, oldPassword, newPassword string) error {
	account, err := u.accounts.GetByID(ctx, actor.AccountID())
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	if !auth.CheckPassword(account.PasswordHash, oldPassword) {
		return apperror.FieldError("old_password", "Old password is incorrect")
	}

	problems := validation.ValidatePassword(newPassword, validation.UserAttributes{
		Username:  account.Username,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	})
	if len(problems) > 0 {
		return apperror.Validation("Validation failed", map[string][]string{"new_password": problems})
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}

	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
			return internal(err)
		}
		if err := u.refreshes.RevokeAllForAccount(ctx, account.ID); err != nil {
			return internal(err)
		}
		return nil
	})
}

// Authenticate trusts the stored role over the token claim so a stale token
// cannot carry a role the account no longer has.
func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (domain.Actor, error) {
	claims, err := u.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	id, err := claims.AccountID()
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	account, err := u.accounts.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Unauthorized("User not found")
	}
	if err != nil {
		return nil, internal(err)
	}
	if !account.IsActive {
		return nil, apperror.Unauthorized("User is inactive")
	}

	actor, err := domain.NewActor(account.ID, account.Role)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return actor, nil
}

func (u *authUsecase) GetMe(ctx context.Context, actor domain.Actor) (*domain.Account, error) {
	account, err := u.accounts.GetByID(ctx, actor.AccountID())
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return account, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, actor domain.Actor) (*domain.UserProfile, error) {
	profile, err := u.profiles.GetByAccountID(ctx, actor.AccountID())
	if err != nil {
		return nil, notFoundOr(err, "Profile not found")
	}
	if account, err := u.accounts.GetByID(ctx, actor.AccountID()); err == nil {
		profile.User = account
	}
	return profile, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, actor domain.Actor, in domain.UpdateProfileInput) (*domain.UserProfile, error) {
	profile, err := u.profiles.GetByAccountID(ctx, actor.AccountID())
	if err != nil {
		return nil, notFoundOr(err, "Profile not found")
	}
	if in.Bio != nil {
		profile.Bio = in.Bio
	}
	if in.DateOfBirth != nil {
		profile.DateOfBirth = in.DateOfBirth
	}
	if err := u.profiles.Update(ctx, profile); err != nil {
		return nil, notFoundOr(err, "Profile not found")
	}
	if account, err := u.accounts.GetByID(ctx, actor.AccountID()); err == nil {
		profile.User = account
	}
	return profile, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, account *domain.Account) (*domain.TokenPair, error) {
	pair, issued, err := u.tokens.GeneratePair(account.ID, string(account.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.refreshes.Create(ctx, issued.JTI.String(), account.ID, issued.ExpiresAt); err != nil {
		return nil, internal(err)
	}
	return &domain.TokenPair{Refresh: pair.RefreshToken, Access: pair.AccessToken}, nil
}
