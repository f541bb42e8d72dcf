package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
)

type youthUsecase struct {
	profiles    domain.YouthProfileRepository
	skills      domain.SkillRepository
	youthSkills domain.YouthSkillRepository
	experiences domain.ExperienceRepository
	accounts    domain.AccountRepository
}

func NewYouthUsecase(
	profiles domain.YouthProfileRepository,
	skills domain.SkillRepository,
	youthSkills domain.YouthSkillRepository,
	experiences domain.ExperienceRepository,
	accounts domain.AccountRepository,
) domain.YouthUsecase {
	return &youthUsecase{
		profiles:    profiles,
		skills:      skills,
		youthSkills: youthSkills,
		experiences: experiences,
		accounts:    accounts,
	}
}

// GetProfile returns the caller's profile, creating an empty one on first access.
func (uc *youthUsecase) GetProfile(ctx context.Context, actor domain.Actor) (*domain.YouthProfile, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetOrCreate(ctx, youth.AccountID())
	if err != nil {
		return nil, internal(err)
	}
	return uc.hydrate(ctx, profile)
}

func (uc *youthUsecase) UpdateProfile(ctx context.Context, actor domain.Actor, in domain.YouthProfileInput) (*domain.YouthProfile, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, err
	}
	if in.Age != nil && *in.Age < 0 {
		return nil, apperror.FieldError("age", "Ensure this value is greater than or equal to 0.")
	}
	if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
		return nil, apperror.FieldError("years_of_experience", "Ensure this value is greater than or equal to 0.")
	}

	profile, err := uc.profiles.GetOrCreate(ctx, youth.AccountID())
	if err != nil {
		return nil, internal(err)
	}
	in.Apply(profile)
	profile.ProfileCompleted = profile.Complete()

	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, internal(err)
	}
	return uc.hydrate(ctx, profile)
}

func (uc *youthUsecase) hydrate(ctx context.Context, profile *domain.YouthProfile) (*domain.YouthProfile, error) {
	skills, err := uc.youthSkills.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, internal(err)
	}
	experiences, err := uc.experiences.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, internal(err)
	}
	profile.Skills = skills
	profile.Experiences = experiences
	if account, err := uc.accounts.GetByID(ctx, profile.AccountID); err == nil {
		profile.User = account
	}
	return profile, nil
}

// existingProfile is used by the sub-resource operations, which 404 until the
// profile exists.
func (uc *youthUsecase) existingProfile(ctx context.Context, actor domain.Actor) (*domain.YouthProfile, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetByAccountID(ctx, youth.AccountID())
	if err != nil {
		return nil, notFoundOr(err, "Youth profile not found")
	}
	return profile, nil
}

func (uc *youthUsecase) ListSkillCatalog(ctx context.Context) ([]domain.Skill, error) {
	skills, err := uc.skills.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return skills, nil
}

// InternSkill returns the catalog entry for name, adding it if needed.
func (uc *youthUsecase) InternSkill(ctx context.Context, name string, category domain.SkillCategory) (*domain.Skill, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperror.FieldError("name", "This field may not be blank.")
	}
	if category == "" {
		category = domain.SkillCategoryOther
	}
	skill, created, err := uc.skills.Intern(ctx, name, category)
	if err != nil {
		return nil, false, internal(err)
	}
	return skill, created, nil
}

func (uc *youthUsecase) ListSkills(ctx context.Context, actor domain.Actor) ([]domain.YouthSkill, error) {
	profile, err := uc.existingProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	skills, err := uc.youthSkills.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, internal(err)
	}
	return skills, nil
}

// AddSkill tags the caller with a catalog skill given by id, or by name in
// which case the name is interned first.
func (uc *youthUsecase) AddSkill(ctx context.Context, actor domain.Actor, in domain.AddSkillInput) (*domain.YouthSkill, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, err
	}
	if in.YearsOfExperience < 0 {
		return nil, apperror.FieldError("years_of_experience", "Ensure this value is greater than or equal to 0.")
	}

	var skill *domain.Skill
	switch {
	case in.SkillID != nil:
		skill, err = uc.skills.GetByID(ctx, *in.SkillID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.FieldError("skill_id", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *in.SkillID))
		}
		if err != nil {
			return nil, internal(err)
		}
	case in.SkillName != nil:
		var category domain.SkillCategory
		if in.Category != nil {
			category = *in.Category
		}
		skill, _, err = uc.InternSkill(ctx, *in.SkillName, category)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperror.FieldError("skill_id", "This field is required.")
	}

	profile, err := uc.profiles.GetOrCreate(ctx, youth.AccountID())
	if err != nil {
		return nil, internal(err)
	}

	proficiency := in.Proficiency
	if proficiency == "" {
		proficiency = domain.ProficiencyBeginner
	}
	ys := &domain.YouthSkill{
		YouthProfileID:    profile.ID,
		Skill:             *skill,
		Proficiency:       proficiency,
		YearsOfExperience: in.YearsOfExperience,
	}
	if err := uc.youthSkills.Create(ctx, ys); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already added this skill")
		}
		return nil, internal(err)
	}
	return ys, nil
}

func (uc *youthUsecase) GetSkill(ctx context.Context, actor domain.Actor, id int64) (*domain.YouthSkill, error) {
	profile, err := uc.existingProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	ys, err := uc.youthSkills.Get(ctx, profile.ID, id)
	if err != nil {
		return nil, notFoundOr(err, "Skill not found")
	}
	return ys, nil
}

func (uc *youthUsecase) UpdateSkill(ctx context.Context, actor domain.Actor, id int64, in domain.UpdateYouthSkillInput) (*domain.YouthSkill, error) {
	ys, err := uc.GetSkill(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Proficiency != nil {
		ys.Proficiency = *in.Proficiency
	}
	if in.YearsOfExperience != nil {
		if *in.YearsOfExperience < 0 {
			return nil, apperror.FieldError("years_of_experience", "Ensure this value is greater than or equal to 0.")
		}
		ys.YearsOfExperience = *in.YearsOfExperience
	}
	if err := uc.youthSkills.Update(ctx, ys); err != nil {
		return nil, notFoundOr(err, "Skill not found")
	}
	return ys, nil
}

func (uc *youthUsecase) RemoveSkill(ctx context.Context, actor domain.Actor, id int64) error {
	profile, err := uc.existingProfile(ctx, actor)
	if err != nil {
		return err
	}
	if err := uc.youthSkills.Delete(ctx, profile.ID, id); err != nil {
		return notFoundOr(err, "Skill not found")
	}
	return nil
}

func (uc *youthUsecase) ListExperience(ctx context.Context, actor domain.Actor) ([]domain.Experience, error) {
	profile, err := uc.existingProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	experiences, err := uc.experiences.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, internal(err)
	}
	return experiences, nil
}

func (uc *youthUsecase) AddExperience(ctx context.Context, actor domain.Actor, in domain.ExperienceInput) (*domain.Experience, error) {
	youth, err := requireYouth(actor)
	if err != nil {
		return nil, err
	}

	var e domain.Experience
	in.Apply(&e)
	if err := validateExperience(&e); err != nil {
		return nil, err
	}

	profile, err := uc.profiles.GetOrCreate(ctx, youth.AccountID())
	if err != nil {
		return nil, internal(err)
	}
	e.YouthProfileID = profile.ID
	if err := uc.experiences.Create(ctx, &e); err != nil {
		return nil, internal(err)
	}
	return &e, nil
}

func (uc *youthUsecase) GetExperience(ctx context.Context, actor domain.Actor, id int64) (*domain.Experience, error) {
	profile, err := uc.existingProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	e, err := uc.experiences.Get(ctx, profile.ID, id)
	if err != nil {
		return nil, notFoundOr(err, "Experience not found")
	}
	return e, nil
}

func (uc *youthUsecase) UpdateExperience(ctx context.Context, actor domain.Actor, id int64, in domain.ExperienceInput) (*domain.Experience, error) {
	return uc.saveExperience(ctx, actor, id, in.Apply)
}

func (uc *youthUsecase) PatchExperience(ctx context.Context, actor domain.Actor, id int64, patch domain.ExperiencePatch) (*domain.Experience, error) {
	return uc.saveExperience(ctx, actor, id, patch.Apply)
}

func (uc *youthUsecase) saveExperience(ctx context.Context, actor domain.Actor, id int64, apply func(*domain.Experience)) (*domain.Experience, error) {
	e, err := uc.GetExperience(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	apply(e)
	if err := validateExperience(e); err != nil {
		return nil, err
	}
	if err := uc.experiences.Update(ctx, e); err != nil {
		return nil, notFoundOr(err, "Experience not found")
	}
	return e, nil
}

func (uc *youthUsecase) RemoveExperience(ctx context.Context, actor domain.Actor, id int64) error {
	profile, err := uc.existingProfile(ctx, actor)
	if err != nil {
		return err
	}
	if err := uc.experiences.Delete(ctx, profile.ID, id); err != nil {
		return notFoundOr(err, "Experience not found")
	}
	return nil
}

func validateExperience(e *domain.Experience) error {
	fields := map[string][]string{}
	if strings.TrimSpace(e.Title) == "" {
		fields["title"] = []string{"This field is required."}
	}
	if strings.TrimSpace(e.Company) == "" {
		fields["company"] = []string{"This field is required."}
	}
	if e.StartDate.IsZero() {
		fields["start_date"] = []string{"This field is required."}
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields)
	}
	if !e.ValidDates() {
		return apperror.FieldError("end_date", "End date must be after start date.")
	}
	return nil
}
