package domain

import (
	"context"
	"time"
)

type Industry string

const (
	IndustryTech          Industry = "tech"
	IndustryFinance       Industry = "finance"
	IndustryEducation     Industry = "education"
	IndustryHealthcare    Industry = "healthcare"
	IndustryRetail        Industry = "retail"
	IndustryManufacturing Industry = "manufacturing"
	IndustryAgriculture   Industry = "agriculture"
	IndustryOther         Industry = "other"
)

// EmployerProfile is the company record owned by an employer account.
type EmployerProfile struct {
	ID                 int64     `json:"id"`
	AccountID          int64     `json:"-"`
	User               *Account  `json:"user,omitempty"`
	CompanyName        string    `json:"company_name"`
	CompanyDescription string    `json:"company_description"`
	Industry           Industry  `json:"industry"`
	CompanyWebsite     string    `json:"company_website"`
	CompanyEmail       string    `json:"company_email"`
	CompanyPhone       string    `json:"company_phone"`
	County             string    `json:"county"`
	City               string    `json:"city"`
	Address            string    `json:"address"`
	Verified           bool      `json:"verified"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EmployerProfileInput carries a create or partial update. Nil fields are left unchanged.
type EmployerProfileInput struct {
	CompanyName        *string
	CompanyDescription *string
	Industry           *Industry
	CompanyWebsite     *string
	CompanyEmail       *string
	CompanyPhone       *string
	County             *string
	City               *string
	Address            *string
}

// Apply copies the set fields onto p.
func (in EmployerProfileInput) Apply(p *EmployerProfile) {
	setString(&p.CompanyName, in.CompanyName)
	setString(&p.CompanyDescription, in.CompanyDescription)
	if in.Industry != nil {
		p.Industry = *in.Industry
	}
	setString(&p.CompanyWebsite, in.CompanyWebsite)
	setString(&p.CompanyEmail, in.CompanyEmail)
	setString(&p.CompanyPhone, in.CompanyPhone)
	setString(&p.County, in.County)
	setString(&p.City, in.City)
	setString(&p.Address, in.Address)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

type EmployerProfileRepository interface {
	Create(ctx context.Context, profile *EmployerProfile) error
	GetByAccountID(ctx context.Context, accountID int64) (*EmployerProfile, error)
	Update(ctx context.Context, profile *EmployerProfile) error
}

type EmployerUsecase interface {
	CreateProfile(ctx context.Context, actor Actor, input EmployerProfileInput) (*EmployerProfile, error)
	GetProfile(ctx context.Context, actor Actor) (*EmployerProfile, error)
	UpdateProfile(ctx context.Context, actor Actor, input EmployerProfileInput) (*EmployerProfile, error)
}
