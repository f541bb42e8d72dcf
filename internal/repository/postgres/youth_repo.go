package postgres

import (
	"context"
	"errors"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type youthProfileRepo struct {
	db database.DBTX
}

func NewYouthProfileRepository(db database.DBTX) domain.YouthProfileRepository {
	return &youthProfileRepo{db: db}
}

// GetOrCreate inserts an empty profile when the account has none. Concurrent
// first reads race on the account_id unique key and both see the same row.
func (r *youthProfileRepo) GetOrCreate(ctx context.Context, accountID int64) (*domain.YouthProfile, error) {
	if _, err := database.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO youth_profiles (account_id) VALUES ($1) ON CONFLICT (account_id) DO NOTHING`,
		accountID,
	); err != nil {
		return nil, mapError(err)
	}

	return r.GetByAccountID(ctx, accountID)
}

func (r *youthProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.YouthProfile, error) {
	query := `
		SELECT id, account_id, age, county, city, preferred_work_type, education_level,
		       years_of_experience, profile_completed, created_at, updated_at
		FROM youth_profiles
		WHERE account_id = $1`
	var p domain.YouthProfile
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.Age, &p.County, &p.City, &p.PreferredWorkType, &p.EducationLevel,
		&p.YearsOfExperience, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *youthProfileRepo) Update(ctx context.Context, p *domain.YouthProfile) error {
	query := `
		UPDATE youth_profiles SET
			age = $2, county = $3, city = $4, preferred_work_type = $5, education_level = $6,
			years_of_experience = $7, profile_completed = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		p.ID, p.Age, p.County, p.City, p.PreferredWorkType, p.EducationLevel,
		p.YearsOfExperience, p.ProfileCompleted,
	).Scan(&p.UpdatedAt)
	return mapError(err)
}

func (r *youthProfileRepo) ListMatchCandidates(ctx context.Context, skillIDs []int64) ([]domain.MatchCandidate, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT a.id, a.email, COALESCE(NULLIF(a.first_name, ''), a.username), COUNT(DISTINCT ys.skill_id)
		FROM youth_skills ys
		JOIN youth_profiles yp ON yp.id = ys.youth_profile_id
		JOIN accounts a ON a.id = yp.account_id
		WHERE ys.skill_id = ANY($1::bigint[]) AND a.is_active
		GROUP BY a.id, a.email, a.first_name, a.username
		ORDER BY a.id`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, pq.Array(skillIDs))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []domain.MatchCandidate
	for rows.Next() {
		var c domain.MatchCandidate
		if err := rows.Scan(&c.AccountID, &c.Email, &c.Name, &c.MatchedSkills); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type skillRepo struct {
	db database.DBTX
}

func NewSkillRepository(db database.DBTX) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id, name, category, created_at FROM skills ORDER BY name`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// Intern relies on the unique name constraint, so concurrent callers with the
// same name end up with one row.
func (r *skillRepo) Intern(ctx context.Context, name string, category domain.SkillCategory) (*domain.Skill, bool, error) {
	conn := database.Conn(ctx, r.db)

	var s domain.Skill
	err := conn.QueryRow(ctx, `
		INSERT INTO skills (name, category) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, category, created_at`,
		name, category,
	).Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	if err == nil {
		return &s, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, mapError(err)
	}

	err = conn.QueryRow(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
	if err != nil {
		return nil, false, mapError(err)
	}
	return &s, false, nil
}

const youthSkillSelect = `
	SELECT ys.id, ys.youth_profile_id, s.id, s.name, s.category, s.created_at,
	       ys.proficiency, ys.years_of_experience, ys.added_at
	FROM youth_skills ys
	JOIN skills s ON s.id = ys.skill_id`

type youthSkillRepo struct {
	db database.DBTX
}

func NewYouthSkillRepository(db database.DBTX) domain.YouthSkillRepository {
	return &youthSkillRepo{db: db}
}

func scanYouthSkill(row interface{ Scan(dest ...any) error }, ys *domain.YouthSkill) error {
	return row.Scan(
		&ys.ID, &ys.YouthProfileID, &ys.Skill.ID, &ys.Skill.Name, &ys.Skill.Category, &ys.Skill.CreatedAt,
		&ys.Proficiency, &ys.YearsOfExperience, &ys.AddedAt,
	)
}

func (r *youthSkillRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.YouthSkill, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		youthSkillSelect+` WHERE ys.youth_profile_id = $1 ORDER BY ys.added_at, ys.id`, profileID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.YouthSkill{}
	for rows.Next() {
		var ys domain.YouthSkill
		if err := scanYouthSkill(rows, &ys); err != nil {
			return nil, err
		}
		out = append(out, ys)
	}
	return out, rows.Err()
}

// Get scopes the lookup to profileID so another youth's entry reads as missing.
func (r *youthSkillRepo) Get(ctx context.Context, profileID, id int64) (*domain.YouthSkill, error) {
	var ys domain.YouthSkill
	row := database.Conn(ctx, r.db).QueryRow(ctx,
		youthSkillSelect+` WHERE ys.youth_profile_id = $1 AND ys.id = $2`, profileID, id)
	if err := scanYouthSkill(row, &ys); err != nil {
		return nil, mapError(err)
	}
	return &ys, nil
}

func (r *youthSkillRepo) Create(ctx context.Context, ys *domain.YouthSkill) error {
	query := `
		INSERT INTO youth_skills (youth_profile_id, skill_id, proficiency, years_of_experience)
		VALUES ($1, $2, $3, $4)
		RETURNING id, added_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		ys.YouthProfileID, ys.Skill.ID, ys.Proficiency, ys.YearsOfExperience,
	).Scan(&ys.ID, &ys.AddedAt)
	return mapError(err)
}

func (r *youthSkillRepo) Update(ctx context.Context, ys *domain.YouthSkill) error {
	query := `
		UPDATE youth_skills SET proficiency = $3, years_of_experience = $4
		WHERE youth_profile_id = $1 AND id = $2`
	return expectOne(database.Conn(ctx, r.db).Exec(ctx, query,
		ys.YouthProfileID, ys.ID, ys.Proficiency, ys.YearsOfExperience))
}

func (r *youthSkillRepo) Delete(ctx context.Context, profileID, id int64) error {
	return expectOne(database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM youth_skills WHERE youth_profile_id = $1 AND id = $2`, profileID, id))
}

const experienceSelect = `
	SELECT id, youth_profile_id, title, company, description, start_date, end_date, is_current, created_at
	FROM experiences`

type experienceRepo struct {
	db database.DBTX
}

func NewExperienceRepository(db database.DBTX) domain.ExperienceRepository {
	return &experienceRepo{db: db}
}

func scanExperience(row interface{ Scan(dest ...any) error }, e *domain.Experience) error {
	return row.Scan(
		&e.ID, &e.YouthProfileID, &e.Title, &e.Company, &e.Description,
		&e.StartDate, &e.EndDate, &e.IsCurrent, &e.CreatedAt,
	)
}

func (r *experienceRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Experience, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		experienceSelect+` WHERE youth_profile_id = $1 ORDER BY start_date DESC, id DESC`, profileID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := scanExperience(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *experienceRepo) Get(ctx context.Context, profileID, id int64) (*domain.Experience, error) {
	var e domain.Experience
	row := database.Conn(ctx, r.db).QueryRow(ctx,
		experienceSelect+` WHERE youth_profile_id = $1 AND id = $2`, profileID, id)
	if err := scanExperience(row, &e); err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

func (r *experienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	query := `
		INSERT INTO experiences (youth_profile_id, title, company, description, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		e.YouthProfileID, e.Title, e.Company, e.Description, e.StartDate, e.EndDate, e.IsCurrent,
	).Scan(&e.ID, &e.CreatedAt)
	return mapError(err)
}

func (r *experienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	query := `
		UPDATE experiences SET
			title = $3, company = $4, description = $5, start_date = $6, end_date = $7, is_current = $8
		WHERE youth_profile_id = $1 AND id = $2`
	return expectOne(database.Conn(ctx, r.db).Exec(ctx, query,
		e.YouthProfileID, e.ID, e.Title, e.Company, e.Description, e.StartDate, e.EndDate, e.IsCurrent))
}

func (r *experienceRepo) Delete(ctx context.Context, profileID, id int64) error {
	return expectOne(database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM experiences WHERE youth_profile_id = $1 AND id = $2`, profileID, id))
}
