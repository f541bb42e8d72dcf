package v1

import (
	"net/http"

	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type YouthHandler struct {
	youthUC domain.YouthUsecase
}

func NewYouthHandler(protected *gin.RouterGroup, youthUC domain.YouthUsecase) {
	handler := &YouthHandler{youthUC: youthUC}

	youth := protected.Group("/youth")
	{
		youth.GET("/profile", handler.GetProfile)
		youth.PUT("/profile", handler.UpdateProfile)
		youth.PATCH("/profile", handler.UpdateProfile)

		// Shared skill catalog
		youth.GET("/skills/all", handler.ListCatalog)
		youth.POST("/skills/all", handler.CreateCatalogSkill)

		youth.GET("/skills", handler.ListSkills)
		youth.POST("/skills", handler.AddSkill)
		youth.POST("/skills/add", handler.AddSkill)
		youth.GET("/skills/:id", handler.GetSkill)
		youth.PUT("/skills/:id", handler.UpdateSkill)
		youth.PATCH("/skills/:id", handler.UpdateSkill)
		youth.DELETE("/skills/:id", handler.RemoveSkill)

		youth.GET("/experience", handler.ListExperience)
		youth.POST("/experience", handler.AddExperience)
		youth.GET("/experience/:id", handler.GetExperience)
		youth.PUT("/experience/:id", handler.UpdateExperience)
		youth.PATCH("/experience/:id", handler.PatchExperience)
		youth.DELETE("/experience/:id", handler.RemoveExperience)
	}
}

type YouthProfileRequest struct {
	Age               *int    `json:"age" binding:"omitempty,gte=0,lte=120"`
	County            *string `json:"county" binding:"omitempty,max=100"`
	City              *string `json:"city" binding:"omitempty,max=100"`
	PreferredWorkType *string `json:"preferred_work_type" binding:"omitempty,oneof=full_time part_time freelance internship"`
	EducationLevel    *string `json:"education_level" binding:"omitempty,oneof=secondary certificate diploma degree masters"`
	YearsOfExperience *int    `json:"years_of_experience" binding:"omitempty,gte=0"`
}

type CatalogSkillRequest struct {
	Name     string `json:"name" binding:"required,not_blank,max=100"`
	Category string `json:"category" binding:"omitempty,oneof=tech design business trades other"`
}

type AddSkillRequest struct {
	SkillID           *int64  `json:"skill_id" binding:"omitempty,gt=0"`
	SkillName         *string `json:"skill_name" binding:"omitempty,max=100"`
	Category          *string `json:"category" binding:"omitempty,oneof=tech design business trades other"`
	Proficiency       string  `json:"proficiency" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience int     `json:"years_of_experience" binding:"omitempty,gte=0"`
}

type UpdateSkillRequest struct {
	Proficiency       *string `json:"proficiency" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience *int    `json:"years_of_experience" binding:"omitempty,gte=0"`
}

type ExperienceRequest struct {
	Title       string       `json:"title" binding:"max=200"`
	Company     string       `json:"company" binding:"max=200"`
	Description string       `json:"description"`
	StartDate   *domain.Date `json:"start_date"`
	EndDate     *domain.Date `json:"end_date"`
	IsCurrent   bool         `json:"is_current"`
}

func (r ExperienceRequest) input() domain.ExperienceInput {
	in := domain.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Description: r.Description,
		EndDate:     r.EndDate,
		IsCurrent:   r.IsCurrent,
	}
	if r.StartDate != nil {
		in.StartDate = *r.StartDate
	}
	return in
}

type ExperiencePatchRequest struct {
	Title       *string      `json:"title" binding:"omitempty,max=200"`
	Company     *string      `json:"company" binding:"omitempty,max=200"`
	Description *string      `json:"description"`
	StartDate   *domain.Date `json:"start_date"`
	EndDate     *domain.Date `json:"end_date"`
	IsCurrent   *bool        `json:"is_current"`
}

func (r ExperiencePatchRequest) patch() domain.ExperiencePatch {
	return domain.ExperiencePatch{
		Title:       r.Title,
		Company:     r.Company,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsCurrent:   r.IsCurrent,
	}
}

// GetProfile godoc
// @Summary      Get youth profile
// @Description  Returns the caller's youth profile, creating it on first access
// @Tags         youth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /youth/profile [get]
// @Security     BearerAuth
func (h *YouthHandler) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	profile, err := h.youthUC.GetProfile(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Youth profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Update youth profile
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        profile  body      YouthProfileRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /youth/profile [put]
// @Security     BearerAuth
func (h *YouthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req YouthProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	in := domain.YouthProfileInput{
		Age:               req.Age,
		County:            req.County,
		City:              req.City,
		EducationLevel:    req.EducationLevel,
		YearsOfExperience: req.YearsOfExperience,
	}
	if req.PreferredWorkType != nil {
		wt := domain.WorkType(*req.PreferredWorkType)
		in.PreferredWorkType = &wt
	}

	profile, err := h.youthUC.UpdateProfile(c.Request.Context(), actor, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Youth profile updated", profile)
}

// ListCatalog godoc
// @Summary      List all skills
// @Tags         youth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /youth/skills/all [get]
// @Security     BearerAuth
func (h *YouthHandler) ListCatalog(c *gin.Context) {
	skills, err := h.youthUC.ListSkillCatalog(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}

// CreateCatalogSkill godoc
// @Summary      Add a skill to the catalog
// @Description  Returns the existing skill when the name is already present
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        skill  body      CatalogSkillRequest  true  "Skill"
// @Success      200  {object}  response.Response
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /youth/skills/all [post]
// @Security     BearerAuth
func (h *YouthHandler) CreateCatalogSkill(c *gin.Context) {
	var req CatalogSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, created, err := h.youthUC.InternSkill(c.Request.Context(), req.Name, domain.SkillCategory(req.Category))
	if err != nil {
		c.Error(err)
		return
	}

	if !created {
		response.Success(c, http.StatusOK, "Skill already exists", skill)
		return
	}
	response.Success(c, http.StatusCreated, "Skill created", skill)
}

// ListSkills godoc
// @Summary      List my skills
// @Tags         youth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/skills [get]
// @Security     BearerAuth
func (h *YouthHandler) ListSkills(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	skills, err := h.youthUC.ListSkills(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}

// AddSkill godoc
// @Summary      Add a skill to my profile
// @Description  Reference a catalog skill by skill_id or name it with skill_name
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        skill  body      AddSkillRequest  true  "Skill"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /youth/skills/add [post]
// @Security     BearerAuth
func (h *YouthHandler) AddSkill(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req AddSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	in := domain.AddSkillInput{
		SkillID:           req.SkillID,
		SkillName:         req.SkillName,
		Proficiency:       domain.Proficiency(req.Proficiency),
		YearsOfExperience: req.YearsOfExperience,
	}
	if req.Category != nil {
		category := domain.SkillCategory(*req.Category)
		in.Category = &category
	}

	skill, err := h.youthUC.AddSkill(c.Request.Context(), actor, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Skill added", skill)
}

// GetSkill godoc
// @Summary      Get one of my skills
// @Tags         youth
// @Produce      json
// @Param        id   path      int  true  "Youth skill ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/skills/{id} [get]
// @Security     BearerAuth
func (h *YouthHandler) GetSkill(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	skill, err := h.youthUC.GetSkill(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill retrieved", skill)
}

// UpdateSkill godoc
// @Summary      Update one of my skills
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        id     path      int                 true  "Youth skill ID"
// @Param        skill  body      UpdateSkillRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/skills/{id} [put]
// @Security     BearerAuth
func (h *YouthHandler) UpdateSkill(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	in := domain.UpdateYouthSkillInput{YearsOfExperience: req.YearsOfExperience}
	if req.Proficiency != nil {
		p := domain.Proficiency(*req.Proficiency)
		in.Proficiency = &p
	}

	skill, err := h.youthUC.UpdateSkill(c.Request.Context(), actor, id, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill updated", skill)
}

// RemoveSkill godoc
// @Summary      Remove one of my skills
// @Tags         youth
// @Param        id   path      int  true  "Youth skill ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /youth/skills/{id} [delete]
// @Security     BearerAuth
func (h *YouthHandler) RemoveSkill(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.youthUC.RemoveSkill(c.Request.Context(), actor, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListExperience godoc
// @Summary      List my work experience
// @Tags         youth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/experience [get]
// @Security     BearerAuth
func (h *YouthHandler) ListExperience(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	items, err := h.youthUC.ListExperience(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience retrieved", items)
}

// AddExperience godoc
// @Summary      Add work experience
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        experience  body      ExperienceRequest  true  "Experience"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /youth/experience [post]
// @Security     BearerAuth
func (h *YouthHandler) AddExperience(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req ExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.youthUC.AddExperience(c.Request.Context(), actor, req.input())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Experience added", item)
}

// GetExperience godoc
// @Summary      Get one experience entry
// @Tags         youth
// @Produce      json
// @Param        id   path      int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/experience/{id} [get]
// @Security     BearerAuth
func (h *YouthHandler) GetExperience(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.youthUC.GetExperience(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience retrieved", item)
}

// UpdateExperience godoc
// @Summary      Replace one experience entry
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        id          path      int                true  "Experience ID"
// @Param        experience  body      ExperienceRequest  true  "Experience"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/experience/{id} [put]
// @Security     BearerAuth
func (h *YouthHandler) UpdateExperience(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.youthUC.UpdateExperience(c.Request.Context(), actor, id, req.input())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience updated", item)
}

// PatchExperience godoc
// @Summary      Partially update one experience entry
// @Tags         youth
// @Accept       json
// @Produce      json
// @Param        id          path      int                     true  "Experience ID"
// @Param        experience  body      ExperiencePatchRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /youth/experience/{id} [patch]
// @Security     BearerAuth
func (h *YouthHandler) PatchExperience(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ExperiencePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.youthUC.PatchExperience(c.Request.Context(), actor, id, req.patch())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience updated", item)
}

// RemoveExperience godoc
// @Summary      Delete one experience entry
// @Tags         youth
// @Param        id   path      int  true  "Experience ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /youth/experience/{id} [delete]
// @Security     BearerAuth
func (h *YouthHandler) RemoveExperience(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.youthUC.RemoveExperience(c.Request.Context(), actor, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
