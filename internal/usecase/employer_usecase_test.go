package usecase

import (
	"context"
	"testing"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmployerProfile(t *testing.T) {
	ctx := context.Background()
	employer := domain.EmployerActor{ID: 20}

	t.Run("youth cannot create", func(t *testing.T) {
		profiles, accounts := new(MockEmployerRepo), new(MockAccountRepo)
		uc := NewEmployerUsecase(profiles, accounts)

		_, err := uc.CreateProfile(ctx, domain.YouthActor{ID: 10}, domain.EmployerProfileInput{CompanyName: strPtr("Acme")})
		assert.True(t, apperror.Is(err, apperror.TypeAuthorization))
		profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create defaults industry and stays unverified", func(t *testing.T) {
		profiles, accounts := new(MockEmployerRepo), new(MockAccountRepo)
		uc := NewEmployerUsecase(profiles, accounts)
		profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.EmployerProfile) bool {
			return p.AccountID == 20 && p.Industry == domain.IndustryOther && !p.Verified
		})).Return(nil)
		accounts.On("GetByID", mock.Anything, int64(20)).Return(&domain.Account{ID: 20}, nil)

		p, err := uc.CreateProfile(ctx, employer, domain.EmployerProfileInput{CompanyName: strPtr("Acme")})
		require.NoError(t, err)
		assert.Equal(t, "Acme", p.CompanyName)
	})

	t.Run("second create is a conflict", func(t *testing.T) {
		profiles, accounts := new(MockEmployerRepo), new(MockAccountRepo)
		uc := NewEmployerUsecase(profiles, accounts)
		profiles.On("Create", mock.Anything, mock.Anything).Return(&domain.UniqueViolation{Constraint: "employer_profiles_account_id_key"})

		_, err := uc.CreateProfile(ctx, employer, domain.EmployerProfileInput{CompanyName: strPtr("Acme")})
		assert.True(t, apperror.Is(err, apperror.TypeConflict))
	})

	t.Run("missing profile is 404", func(t *testing.T) {
		profiles, accounts := new(MockEmployerRepo), new(MockAccountRepo)
		uc := NewEmployerUsecase(profiles, accounts)
		profiles.On("GetByAccountID", mock.Anything, int64(20)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetProfile(ctx, employer)
		assert.True(t, apperror.Is(err, apperror.TypeNotFound))

		_, err = uc.UpdateProfile(ctx, employer, domain.EmployerProfileInput{City: strPtr("Mombasa")})
		assert.True(t, apperror.Is(err, apperror.TypeNotFound))
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		profiles, accounts := new(MockEmployerRepo), new(MockAccountRepo)
		uc := NewEmployerUsecase(profiles, accounts)
		profiles.On("GetByAccountID", mock.Anything, int64(20)).
			Return(&domain.EmployerProfile{ID: 3, AccountID: 20, CompanyName: "Acme", County: "Nairobi", Verified: true}, nil)
		profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.EmployerProfile) bool {
			return p.CompanyName == "Acme" && p.City == "Mombasa" && p.County == "Nairobi" && p.Verified
		})).Return(nil)
		accounts.On("GetByID", mock.Anything, int64(20)).Return(nil, domain.ErrNotFound)

		p, err := uc.UpdateProfile(ctx, employer, domain.EmployerProfileInput{City: strPtr("Mombasa")})
		require.NoError(t, err)
		assert.Equal(t, "Mombasa", p.City)
	})
}
