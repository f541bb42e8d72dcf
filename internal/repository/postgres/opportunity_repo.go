package postgres

import (
	"context"
	"fmt"
	"strings"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/database"

	"github.com/lib/pq"
)

const opportunitySelect = `
	SELECT o.id, o.employer_id, ep.account_id, o.title, o.description, o.category, o.opportunity_type,
	       o.county, o.city, o.experience_required, o.salary_min, o.salary_max,
	       o.application_deadline, o.is_active, o.created_at, o.updated_at,
	       ep.id, ep.company_name, ep.industry, ep.county, ep.city, ep.verified,
	       COALESCE((SELECT array_agg(s.id ORDER BY s.name) FROM opportunity_skills os
	                 JOIN skills s ON s.id = os.skill_id WHERE os.opportunity_id = o.id), '{}') AS skill_ids,
	       COALESCE((SELECT array_agg(s.name ORDER BY s.name) FROM opportunity_skills os
	                 JOIN skills s ON s.id = os.skill_id WHERE os.opportunity_id = o.id), '{}') AS skill_names
	FROM opportunities o
	JOIN employer_profiles ep ON ep.id = o.employer_id`

type opportunityRepo struct {
	db database.DBTX
}

func NewOpportunityRepository(db database.DBTX) domain.OpportunityRepository {
	return &opportunityRepo{db: db}
}

func scanOpportunity(row interface{ Scan(dest ...any) error }) (*domain.Opportunity, error) {
	var (
		o        domain.Opportunity
		emp      domain.EmployerSummary
		skillIDs []int64
		names    []string
	)
	err := row.Scan(
		&o.ID, &o.EmployerID, &o.EmployerAccountID, &o.Title, &o.Description, &o.Category, &o.OpportunityType,
		&o.County, &o.City, &o.ExperienceRequired, &o.SalaryMin, &o.SalaryMax,
		&o.ApplicationDeadline, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
		&emp.ID, &emp.CompanyName, &emp.Industry, &emp.County, &emp.City, &emp.Verified,
		pq.Array(&skillIDs), pq.Array(&names),
	)
	if err != nil {
		return nil, err
	}
	o.Employer = &emp
	o.RequiredSkills = make([]domain.SkillRef, 0, len(skillIDs))
	for i := range skillIDs {
		if i < len(names) {
			o.RequiredSkills = append(o.RequiredSkills, domain.SkillRef{ID: skillIDs[i], Name: names[i]})
		}
	}
	return &o, nil
}

func (r *opportunityRepo) Create(ctx context.Context, o *domain.Opportunity, skillIDs []int64) error {
	query := `
		INSERT INTO opportunities (employer_id, title, description, category, opportunity_type, county, city,
		       experience_required, salary_min, salary_max, application_deadline, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	conn := database.Conn(ctx, r.db)
	err := conn.QueryRow(ctx, query,
		o.EmployerID, o.Title, o.Description, o.Category, o.OpportunityType, o.County, o.City,
		o.ExperienceRequired, o.SalaryMin, o.SalaryMax, o.ApplicationDeadline, o.IsActive,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return insertOpportunitySkills(ctx, conn, o.ID, skillIDs)
}

func insertOpportunitySkills(ctx context.Context, conn database.DBTX, opportunityID int64, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := conn.Exec(ctx, `
		INSERT INTO opportunity_skills (opportunity_id, skill_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`,
		opportunityID, pq.Array(skillIDs),
	)
	return mapError(err)
}

func (r *opportunityRepo) GetByID(ctx context.Context, id int64) (*domain.Opportunity, error) {
	o, err := scanOpportunity(database.Conn(ctx, r.db).QueryRow(ctx, opportunitySelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

// opportunityFilterClause builds the WHERE clause for listings. Only active
// postings match; each filter is a case-insensitive equality joined with AND.
// The returned index is the next free placeholder number.
func opportunityFilterClause(f domain.OpportunityFilter) (string, []any, int) {
	conditions := []string{"o.is_active = TRUE"}
	var args []any
	argIndex := 1

	if f.Category != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(o.category) = LOWER($%d)", argIndex))
		args = append(args, f.Category)
		argIndex++
	}
	if f.County != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(o.county) = LOWER($%d)", argIndex))
		args = append(args, f.County)
		argIndex++
	}
	if f.Type != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(o.opportunity_type) = LOWER($%d)", argIndex))
		args = append(args, f.Type)
		argIndex++
	}
	if f.Skill != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM opportunity_skills os JOIN skills s ON s.id = os.skill_id
			WHERE os.opportunity_id = o.id AND LOWER(s.name) = LOWER($%d))`, argIndex))
		args = append(args, f.Skill)
		argIndex++
	}

	return " WHERE " + strings.Join(conditions, " AND "), args, argIndex
}

// opportunityPageClause orders newest first and binds LIMIT/OFFSET starting
// at placeholder argIndex.
func opportunityPageClause(f domain.OpportunityFilter, argIndex int) (string, []any) {
	offset := (f.Page - 1) * f.PageSize
	clause := fmt.Sprintf(" ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	return clause, []any{f.PageSize, offset}
}

// List returns one page of active opportunities, newest first, and the total
// number matching the filter.
func (r *opportunityRepo) List(ctx context.Context, f domain.OpportunityFilter) ([]domain.Opportunity, int, error) {
	where, args, argIndex := opportunityFilterClause(f)
	conn := database.Conn(ctx, r.db)

	var total int
	countQuery := `SELECT COUNT(*) FROM opportunities o` + where
	if err := conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	page, pageArgs := opportunityPageClause(f, argIndex)
	query := opportunitySelect + where + page
	args = append(args, pageArgs...)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	results := []domain.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *opportunityRepo) Update(ctx context.Context, o *domain.Opportunity) error {
	query := `
		UPDATE opportunities SET
			title = $2, description = $3, category = $4, opportunity_type = $5, county = $6, city = $7,
			experience_required = $8, salary_min = $9, salary_max = $10, application_deadline = $11,
			is_active = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		o.ID, o.Title, o.Description, o.Category, o.OpportunityType, o.County, o.City,
		o.ExperienceRequired, o.SalaryMin, o.SalaryMax, o.ApplicationDeadline, o.IsActive,
	).Scan(&o.UpdatedAt)
	return mapError(err)
}

func (r *opportunityRepo) ReplaceSkills(ctx context.Context, opportunityID int64, skillIDs []int64) error {
	conn := database.Conn(ctx, r.db)
	if _, err := conn.Exec(ctx, `DELETE FROM opportunity_skills WHERE opportunity_id = $1`, opportunityID); err != nil {
		return mapError(err)
	}
	return insertOpportunitySkills(ctx, conn, opportunityID, skillIDs)
}

func (r *opportunityRepo) Delete(ctx context.Context, id int64) error {
	return expectOne(database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id))
}
