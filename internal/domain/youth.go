package domain

import (
	"context"
	"time"
)

type WorkType string

const (
	WorkTypeFullTime   WorkType = "full_time"
	WorkTypePartTime   WorkType = "part_time"
	WorkTypeFreelance  WorkType = "freelance"
	WorkTypeInternship WorkType = "internship"
)

type SkillCategory string

const (
	SkillCategoryTech     SkillCategory = "tech"
	SkillCategoryDesign   SkillCategory = "design"
	SkillCategoryBusiness SkillCategory = "business"
	SkillCategoryTrades   SkillCategory = "trades"
	SkillCategoryOther    SkillCategory = "other"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

type YouthProfile struct {
	ID                int64        `json:"id"`
	AccountID         int64        `json:"-"`
	User              *Account     `json:"user,omitempty"`
	Age               *int         `json:"age"`
	County            string       `json:"county"`
	City              string       `json:"city"`
	PreferredWorkType WorkType     `json:"preferred_work_type"`
	Skills            []YouthSkill `json:"skills"`
	EducationLevel    string       `json:"education_level"`
	YearsOfExperience int          `json:"years_of_experience"`
	Experiences       []Experience `json:"experiences"`
	ProfileCompleted  bool         `json:"profile_completed"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Complete reports whether the fields a matching employer needs are filled in.
func (p *YouthProfile) Complete() bool {
	return p.Age != nil && p.County != "" && p.City != "" && p.EducationLevel != ""
}

type YouthProfileInput struct {
	Age               *int
	County            *string
	City              *string
	PreferredWorkType *WorkType
	EducationLevel    *string
	YearsOfExperience *int
}

func (in YouthProfileInput) Apply(p *YouthProfile) {
	if in.Age != nil {
		p.Age = in.Age
	}
	setString(&p.County, in.County)
	setString(&p.City, in.City)
	if in.PreferredWorkType != nil {
		p.PreferredWorkType = *in.PreferredWorkType
	}
	setString(&p.EducationLevel, in.EducationLevel)
	if in.YearsOfExperience != nil {
		p.YearsOfExperience = *in.YearsOfExperience
	}
}

// Skill is shared reference data; names are unique and case-sensitive.
type Skill struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Category  SkillCategory `json:"category"`
	CreatedAt time.Time     `json:"created_at"`
}

type YouthSkill struct {
	ID                int64       `json:"id"`
	YouthProfileID    int64       `json:"-"`
	Skill             Skill       `json:"skill"`
	Proficiency       Proficiency `json:"proficiency"`
	YearsOfExperience int         `json:"years_of_experience"`
	AddedAt           time.Time   `json:"added_at"`
}

// AddSkillInput names the skill either by id or by name.
type AddSkillInput struct {
	SkillID           *int64
	SkillName         *string
	Category          *SkillCategory
	Proficiency       Proficiency
	YearsOfExperience int
}

type UpdateYouthSkillInput struct {
	Proficiency       *Proficiency
	YearsOfExperience *int
}

type Experience struct {
	ID             int64     `json:"id"`
	YouthProfileID int64     `json:"-"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Description    string    `json:"description"`
	StartDate      Date      `json:"start_date"`
	EndDate        *Date     `json:"end_date"`
	IsCurrent      bool      `json:"is_current"`
	CreatedAt      time.Time `json:"created_at"`
}

// ValidDates reports whether the end date, when present, is not before the start date.
func (e *Experience) ValidDates() bool {
	return e.EndDate == nil || !e.EndDate.Before(e.StartDate.Time)
}

// ExperienceInput is a full replacement of an experience entry's fields.
type ExperienceInput struct {
	Title       string
	Company     string
	Description string
	StartDate   Date
	EndDate     *Date
	IsCurrent   bool
}

func (in ExperienceInput) Apply(e *Experience) {
	e.Title = in.Title
	e.Company = in.Company
	e.Description = in.Description
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.IsCurrent = in.IsCurrent
}

// ExperiencePatch changes only the fields that are set.
type ExperiencePatch struct {
	Title       *string
	Company     *string
	Description *string
	StartDate   *Date
	EndDate     *Date
	IsCurrent   *bool
}

func (p ExperiencePatch) Apply(e *Experience) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Company != nil {
		e.Company = *p.Company
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = p.EndDate
	}
	if p.IsCurrent != nil {
		e.IsCurrent = *p.IsCurrent
	}
}

type YouthProfileRepository interface {
	// GetOrCreate returns the profile for accountID, creating an empty one if absent.
	GetOrCreate(ctx context.Context, accountID int64) (*YouthProfile, error)
	GetByAccountID(ctx context.Context, accountID int64) (*YouthProfile, error)
	Update(ctx context.Context, profile *YouthProfile) error
	// ListMatchCandidates returns youths holding any of skillIDs with the count they hold.
	ListMatchCandidates(ctx context.Context, skillIDs []int64) ([]MatchCandidate, error)
}

type SkillRepository interface {
	List(ctx context.Context) ([]Skill, error)
	GetByID(ctx context.Context, id int64) (*Skill, error)
	// Intern returns the skill named name, inserting it if absent. created
	// reports whether this call inserted it.
	Intern(ctx context.Context, name string, category SkillCategory) (skill *Skill, created bool, err error)
}

type YouthSkillRepository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]YouthSkill, error)
	Get(ctx context.Context, profileID, id int64) (*YouthSkill, error)
	Create(ctx context.Context, ys *YouthSkill) error
	Update(ctx context.Context, ys *YouthSkill) error
	Delete(ctx context.Context, profileID, id int64) error
}

type ExperienceRepository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]Experience, error)
	Get(ctx context.Context, profileID, id int64) (*Experience, error)
	Create(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, profileID, id int64) error
}

type YouthUsecase interface {
	GetProfile(ctx context.Context, actor Actor) (*YouthProfile, error)
	UpdateProfile(ctx context.Context, actor Actor, input YouthProfileInput) (*YouthProfile, error)

	ListSkillCatalog(ctx context.Context) ([]Skill, error)
	InternSkill(ctx context.Context, name string, category SkillCategory) (*Skill, bool, error)

	ListSkills(ctx context.Context, actor Actor) ([]YouthSkill, error)
	AddSkill(ctx context.Context, actor Actor, input AddSkillInput) (*YouthSkill, error)
	GetSkill(ctx context.Context, actor Actor, id int64) (*YouthSkill, error)
	UpdateSkill(ctx context.Context, actor Actor, id int64, input UpdateYouthSkillInput) (*YouthSkill, error)
	RemoveSkill(ctx context.Context, actor Actor, id int64) error

	ListExperience(ctx context.Context, actor Actor) ([]Experience, error)
	AddExperience(ctx context.Context, actor Actor, input ExperienceInput) (*Experience, error)
	GetExperience(ctx context.Context, actor Actor, id int64) (*Experience, error)
	UpdateExperience(ctx context.Context, actor Actor, id int64, input ExperienceInput) (*Experience, error)
	PatchExperience(ctx context.Context, actor Actor, id int64, patch ExperiencePatch) (*Experience, error)
	RemoveExperience(ctx context.Context, actor Actor, id int64) error
}
