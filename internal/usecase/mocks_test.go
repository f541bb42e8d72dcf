package usecase

import (
	"context"
	"sync"
	"time"

	"opportunityhub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// fakeTx runs hooks after fn succeeds and drops them when fn fails.
type fakeTx struct {
	hooks []func(ctx context.Context)
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	f.hooks = nil
	if err := fn(ctx); err != nil {
		f.hooks = nil
		return err
	}
	hooks := f.hooks
	f.hooks = nil
	for _, h := range hooks {
		h(context.WithoutCancel(ctx))
	}
	return nil
}

func (f *fakeTx) AfterCommit(ctx context.Context, hook func(ctx context.Context)) {
	f.hooks = append(f.hooks, hook)
}

type recordingNotifier struct {
	mu       sync.Mutex
	welcomes []*domain.Account
	statuses []domain.ApplicationStatusNotice
	matches  []domain.OpportunityMatchNotice
}

func (n *recordingNotifier) Welcome(ctx context.Context, account *domain.Account) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, account)
	return true
}

func (n *recordingNotifier) ApplicationStatusChanged(ctx context.Context, notice domain.ApplicationStatusNotice) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, notice)
	return true
}

func (n *recordingNotifier) OpportunityMatched(ctx context.Context, notice domain.OpportunityMatchNotice) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.matches = append(n.matches, notice)
	return true
}

// Mock Repositories
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *MockAccountRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockUserProfileRepo struct {
	mock.Mock
}

func (m *MockUserProfileRepo) Create(ctx context.Context, accountID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserProfileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	return m.Called(ctx, p).Error(0)
}

type MockRefreshTokenRepo struct {
	mock.Mock
}

func (m *MockRefreshTokenRepo) Create(ctx context.Context, jti string, accountID int64, exp time.Time) error {
	return m.Called(ctx, jti, accountID, exp).Error(0)
}
func (m *MockRefreshTokenRepo) IsActive(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
func (m *MockRefreshTokenRepo) Revoke(ctx context.Context, jti string) error {
	return m.Called(ctx, jti).Error(0)
}
func (m *MockRefreshTokenRepo) RevokeAllForAccount(ctx context.Context, accountID int64) error {
	return m.Called(ctx, accountID).Error(0)
}

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) Create(ctx context.Context, p *domain.EmployerProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockEmployerRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}
func (m *MockEmployerRepo) Update(ctx context.Context, p *domain.EmployerProfile) error {
	return m.Called(ctx, p).Error(0)
}

type MockYouthProfileRepo struct {
	mock.Mock
}

func (m *MockYouthProfileRepo) GetOrCreate(ctx context.Context, accountID int64) (*domain.YouthProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YouthProfile), args.Error(1)
}
func (m *MockYouthProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.YouthProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YouthProfile), args.Error(1)
}
func (m *MockYouthProfileRepo) Update(ctx context.Context, p *domain.YouthProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockYouthProfileRepo) ListMatchCandidates(ctx context.Context, skillIDs []int64) ([]domain.MatchCandidate, error) {
	args := m.Called(ctx, skillIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchCandidate), args.Error(1)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) Intern(ctx context.Context, name string, category domain.SkillCategory) (*domain.Skill, bool, error) {
	args := m.Called(ctx, name, category)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Skill), args.Bool(1), args.Error(2)
}

type MockYouthSkillRepo struct {
	mock.Mock
}

func (m *MockYouthSkillRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.YouthSkill, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YouthSkill), args.Error(1)
}
func (m *MockYouthSkillRepo) Get(ctx context.Context, profileID, id int64) (*domain.YouthSkill, error) {
	args := m.Called(ctx, profileID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YouthSkill), args.Error(1)
}
func (m *MockYouthSkillRepo) Create(ctx context.Context, ys *domain.YouthSkill) error {
	return m.Called(ctx, ys).Error(0)
}
func (m *MockYouthSkillRepo) Update(ctx context.Context, ys *domain.YouthSkill) error {
	return m.Called(ctx, ys).Error(0)
}
func (m *MockYouthSkillRepo) Delete(ctx context.Context, profileID, id int64) error {
	return m.Called(ctx, profileID, id).Error(0)
}

type MockExperienceRepo struct {
	mock.Mock
}

func (m *MockExperienceRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Experience, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}
func (m *MockExperienceRepo) Get(ctx context.Context, profileID, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, profileID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}
func (m *MockExperienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockExperienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockExperienceRepo) Delete(ctx context.Context, profileID, id int64) error {
	return m.Called(ctx, profileID, id).Error(0)
}

type MockOpportunityRepo struct {
	mock.Mock
}

func (m *MockOpportunityRepo) Create(ctx context.Context, o *domain.Opportunity, skillIDs []int64) error {
	return m.Called(ctx, o, skillIDs).Error(0)
}
func (m *MockOpportunityRepo) GetByID(ctx context.Context, id int64) (*domain.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}
func (m *MockOpportunityRepo) List(ctx context.Context, f domain.OpportunityFilter) ([]domain.Opportunity, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Opportunity), args.Int(1), args.Error(2)
}
func (m *MockOpportunityRepo) Update(ctx context.Context, o *domain.Opportunity) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOpportunityRepo) ReplaceSkills(ctx context.Context, id int64, skillIDs []int64) error {
	return m.Called(ctx, id, skillIDs).Error(0)
}
func (m *MockOpportunityRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) CreateIfAbsent(ctx context.Context, app *domain.Application) (bool, error) {
	args := m.Called(ctx, app)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByYouth(ctx context.Context, youthID int64) ([]domain.Application, error) {
	args := m.Called(ctx, youthID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByEmployer(ctx context.Context, employerID int64) ([]domain.Application, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) LockStatus(ctx context.Context, id int64) (domain.ApplicationStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ApplicationStatus), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
