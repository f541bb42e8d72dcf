package domain

import (
	"context"
	"time"
)

type OpportunityCategory string

const (
	CategoryTechnology   OpportunityCategory = "Technology"
	CategoryAgriculture  OpportunityCategory = "Agriculture"
	CategoryHealthcare   OpportunityCategory = "Healthcare"
	CategoryEducation    OpportunityCategory = "Education"
	CategoryConstruction OpportunityCategory = "Construction"
	CategoryHospitality  OpportunityCategory = "Hospitality"
	CategoryFinance      OpportunityCategory = "Finance"
	CategoryMarketing    OpportunityCategory = "Marketing"
	CategorySales        OpportunityCategory = "Sales"
	CategoryOther        OpportunityCategory = "Other"
)

type OpportunityType string

const (
	TypeFullTime   OpportunityType = "Full-time"
	TypePartTime   OpportunityType = "Part-time"
	TypeContract   OpportunityType = "Contract"
	TypeInternship OpportunityType = "Internship"
	TypeFreelance  OpportunityType = "Freelance"
	TypeGig        OpportunityType = "Gig"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "Entry Level"
	ExperienceOneToTwo  ExperienceLevel = "1-2 years"
	ExperienceThreeFive ExperienceLevel = "3-5 years"
	ExperienceFivePlus  ExperienceLevel = "5+ years"
)

// EmployerSummary is the employer view embedded in opportunity responses.
type EmployerSummary struct {
	ID          int64    `json:"id"`
	CompanyName string   `json:"company_name"`
	Industry    Industry `json:"industry"`
	County      string   `json:"county"`
	City        string   `json:"city"`
	Verified    bool     `json:"verified"`
}

type SkillRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Opportunity struct {
	ID                  int64               `json:"id"`
	EmployerID          int64               `json:"-"`
	EmployerAccountID   int64               `json:"-"`
	Employer            *EmployerSummary    `json:"employer"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Category            OpportunityCategory `json:"category"`
	OpportunityType     OpportunityType     `json:"opportunity_type"`
	County              string              `json:"county"`
	City                *string             `json:"city"`
	RequiredSkills      []SkillRef          `json:"required_skills"`
	ExperienceRequired  ExperienceLevel     `json:"experience_required"`
	SalaryMin           *float64            `json:"salary_min"`
	SalaryMax           *float64            `json:"salary_max"`
	ApplicationDeadline *Date               `json:"application_deadline"`
	IsActive            bool                `json:"is_active"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// DeadlinePassed reports whether the deadline is strictly before today.
// The deadline day itself is still open.
func (o *Opportunity) DeadlinePassed(today Date) bool {
	return o.ApplicationDeadline != nil && o.ApplicationDeadline.Before(today.Time)
}

// OpportunityInput carries a create or partial update. Nil fields are left
// unchanged; a non-nil RequiredSkills replaces the skill set.
type OpportunityInput struct {
	Title               *string
	Description         *string
	Category            *OpportunityCategory
	OpportunityType     *OpportunityType
	County              *string
	City                *string
	RequiredSkills      *[]string
	ExperienceRequired  *ExperienceLevel
	SalaryMin           *float64
	SalaryMax           *float64
	ApplicationDeadline *Date
	IsActive            *bool
}

func (in OpportunityInput) Apply(o *Opportunity) {
	setString(&o.Title, in.Title)
	setString(&o.Description, in.Description)
	if in.Category != nil {
		o.Category = *in.Category
	}
	if in.OpportunityType != nil {
		o.OpportunityType = *in.OpportunityType
	}
	setString(&o.County, in.County)
	if in.City != nil {
		o.City = in.City
	}
	if in.ExperienceRequired != nil {
		o.ExperienceRequired = *in.ExperienceRequired
	}
	if in.SalaryMin != nil {
		o.SalaryMin = in.SalaryMin
	}
	if in.SalaryMax != nil {
		o.SalaryMax = in.SalaryMax
	}
	if in.ApplicationDeadline != nil {
		o.ApplicationDeadline = in.ApplicationDeadline
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
}

// OpportunityFilter holds the list filters. Empty fields do not filter.
// Matching is case-insensitive equality.
type OpportunityFilter struct {
	Category string
	County   string
	Type     string
	Skill    string
	Page     int
	PageSize int
}

type OpportunityPage struct {
	Count    int           `json:"count"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Results  []Opportunity `json:"results"`
}

type OpportunityRepository interface {
	Create(ctx context.Context, o *Opportunity, skillIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Opportunity, error)
	List(ctx context.Context, filter OpportunityFilter) ([]Opportunity, int, error)
	Update(ctx context.Context, o *Opportunity) error
	ReplaceSkills(ctx context.Context, opportunityID int64, skillIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type OpportunityUsecase interface {
	List(ctx context.Context, filter OpportunityFilter) (*OpportunityPage, error)
	Get(ctx context.Context, id int64) (*Opportunity, error)
	Create(ctx context.Context, actor Actor, input OpportunityInput) (*Opportunity, error)
	Update(ctx context.Context, actor Actor, id int64, input OpportunityInput) (*Opportunity, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}
