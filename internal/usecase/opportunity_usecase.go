package usecase

import (
	"context"
	"errors"
	"strings"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
	"opportunityhub-backend/pkg/logger"
	"opportunityhub-backend/pkg/safego"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type opportunityUsecase struct {
	tx            domain.Transactor
	opportunities domain.OpportunityRepository
	employers     domain.EmployerProfileRepository
	skills        domain.SkillRepository
	youth         domain.YouthProfileRepository
	notifier      domain.Notifier
	minMatchScore int
}

func NewOpportunityUsecase(
	tx domain.Transactor,
	opportunities domain.OpportunityRepository,
	employers domain.EmployerProfileRepository,
	skills domain.SkillRepository,
	youth domain.YouthProfileRepository,
	notifier domain.Notifier,
	minMatchScore int,
) domain.OpportunityUsecase {
	return &opportunityUsecase{
		tx:            tx,
		opportunities: opportunities,
		employers:     employers,
		skills:        skills,
		youth:         youth,
		notifier:      notifier,
		minMatchScore: minMatchScore,
	}
}

func (uc *opportunityUsecase) List(ctx context.Context, filter domain.OpportunityFilter) (*domain.OpportunityPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	results, total, err := uc.opportunities.List(ctx, filter)
	if err != nil {
		return nil, internal(err)
	}
	return &domain.OpportunityPage{
		Count:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Results:  results,
	}, nil
}

func (uc *opportunityUsecase) Get(ctx context.Context, id int64) (*domain.Opportunity, error) {
	o, err := uc.opportunities.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Opportunity not found")
	}
	return o, nil
}

// Create posts an opportunity for the caller's employer profile. Matching
// youths are emailed after the posting commits.
func (uc *opportunityUsecase) Create(ctx context.Context, actor domain.Actor, in domain.OpportunityInput) (*domain.Opportunity, error) {
	profile, err := uc.employerProfile(ctx, actor, "Only employers can create opportunities")
	if err != nil {
		return nil, err
	}

	o := &domain.Opportunity{
		EmployerID:         profile.ID,
		ExperienceRequired: domain.ExperienceEntry,
		IsActive:           true,
	}
	in.Apply(o)
	if err := validateOpportunity(o); err != nil {
		return nil, err
	}
	warnSalaryRange(o)

	var created *domain.Opportunity
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var names []string
		if in.RequiredSkills != nil {
			names = *in.RequiredSkills
		}
		skillIDs, err := uc.internSkills(ctx, names)
		if err != nil {
			return err
		}
		if err := uc.opportunities.Create(ctx, o, skillIDs); err != nil {
			return internal(err)
		}
		created, err = uc.opportunities.GetByID(ctx, o.ID)
		if err != nil {
			return internal(err)
		}

		if created.IsActive && len(skillIDs) > 0 {
			posted := *created
			uc.tx.AfterCommit(ctx, func(ctx context.Context) {
				uc.notifyMatches(ctx, &posted, skillIDs)
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *opportunityUsecase) Update(ctx context.Context, actor domain.Actor, id int64, in domain.OpportunityInput) (*domain.Opportunity, error) {
	o, err := uc.owned(ctx, actor, id, "You can only update your own opportunities")
	if err != nil {
		return nil, err
	}

	in.Apply(o)
	if err := validateOpportunity(o); err != nil {
		return nil, err
	}
	warnSalaryRange(o)

	var updated *domain.Opportunity
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.opportunities.Update(ctx, o); err != nil {
			return notFoundOr(err, "Opportunity not found")
		}
		if in.RequiredSkills != nil {
			skillIDs, err := uc.internSkills(ctx, *in.RequiredSkills)
			if err != nil {
				return err
			}
			if err := uc.opportunities.ReplaceSkills(ctx, o.ID, skillIDs); err != nil {
				return internal(err)
			}
		}
		reloaded, err := uc.opportunities.GetByID(ctx, o.ID)
		if err != nil {
			return internal(err)
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *opportunityUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := uc.owned(ctx, actor, id, "You can only delete your own opportunities"); err != nil {
		return err
	}
	if err := uc.opportunities.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Opportunity not found")
	}
	return nil
}

func (uc *opportunityUsecase) employerProfile(ctx context.Context, actor domain.Actor, forbidden string) (*domain.EmployerProfile, error) {
	if _, ok := actor.(domain.EmployerActor); !ok {
		return nil, apperror.Forbidden(forbidden)
	}
	profile, err := uc.employers.GetByAccountID(ctx, actor.AccountID())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Forbidden(forbidden)
	}
	if err != nil {
		return nil, internal(err)
	}
	return profile, nil
}

// owned loads opportunity id and checks the caller's employer profile owns it.
func (uc *opportunityUsecase) owned(ctx context.Context, actor domain.Actor, id int64, notOwner string) (*domain.Opportunity, error) {
	o, err := uc.opportunities.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Opportunity not found")
	}
	profile, err := uc.employerProfile(ctx, actor, "Employer profile not found")
	if err != nil {
		return nil, err
	}
	if o.EmployerID != profile.ID {
		return nil, apperror.Forbidden(notOwner)
	}
	return o, nil
}

// internSkills resolves names to catalog ids, creating missing skills.
// Blank and repeated names are skipped.
func (uc *opportunityUsecase) internSkills(ctx context.Context, names []string) ([]int64, error) {
	seen := make(map[int64]bool, len(names))
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		skill, _, err := uc.skills.Intern(ctx, name, domain.SkillCategoryOther)
		if err != nil {
			return nil, internal(err)
		}
		if !seen[skill.ID] {
			seen[skill.ID] = true
			ids = append(ids, skill.ID)
		}
	}
	return ids, nil
}

// notifyMatches emails every youth whose skill overlap with the posting
// reaches the minimum score. Each send is isolated from the others.
func (uc *opportunityUsecase) notifyMatches(ctx context.Context, o *domain.Opportunity, skillIDs []int64) {
	candidates, err := uc.youth.ListMatchCandidates(ctx, skillIDs)
	if err != nil {
		logger.Log.Error("Failed to load match candidates", zap.Int64("opportunity_id", o.ID), zap.Error(err))
		return
	}

	sent := 0
	for _, c := range candidates {
		score := matchScore(c.MatchedSkills, len(skillIDs))
		if score < uc.minMatchScore {
			continue
		}
		notice := domain.OpportunityMatchNotice{
			Email:            c.Email,
			Name:             c.Name,
			OpportunityID:    o.ID,
			OpportunityTitle: o.Title,
			Score:            score,
		}
		_ = safego.Run("opportunity_match_email", func() {
			if uc.notifier.OpportunityMatched(ctx, notice) {
				sent++
			}
		})
	}
	logger.Log.Info("Opportunity match notifications dispatched",
		zap.Int64("opportunity_id", o.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("sent", sent),
	)
}

func matchScore(matched, required int) int {
	if required == 0 {
		return 0
	}
	if matched > required {
		matched = required
	}
	return matched * 100 / required
}

func validateOpportunity(o *domain.Opportunity) error {
	fields := map[string][]string{}
	for name, value := range map[string]string{
		"title":            o.Title,
		"description":      o.Description,
		"category":         string(o.Category),
		"opportunity_type": string(o.OpportunityType),
		"county":           o.County,
	} {
		if strings.TrimSpace(value) == "" {
			fields[name] = []string{"This field is required."}
		}
	}
	if o.SalaryMin != nil && *o.SalaryMin < 0 {
		fields["salary_min"] = []string{"Ensure this value is greater than or equal to 0."}
	}
	if o.SalaryMax != nil && *o.SalaryMax < 0 {
		fields["salary_max"] = []string{"Ensure this value is greater than or equal to 0."}
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields)
	}
	return nil
}

// warnSalaryRange logs an inverted salary range; the posting is still accepted.
func warnSalaryRange(o *domain.Opportunity) {
	if o.SalaryMin != nil && o.SalaryMax != nil && *o.SalaryMax < *o.SalaryMin {
		logger.Log.Warn("Opportunity salary_max is below salary_min",
			zap.Int64("employer_id", o.EmployerID),
			zap.String("title", o.Title),
			zap.Float64("salary_min", *o.SalaryMin),
			zap.Float64("salary_max", *o.SalaryMax),
		)
	}
}
