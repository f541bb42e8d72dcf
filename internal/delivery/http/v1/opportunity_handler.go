package v1

import (
	"net/http"
	"strings"

	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type OpportunityHandler struct {
	opportunityUC domain.OpportunityUsecase
}

func NewOpportunityHandler(public *gin.RouterGroup, protected *gin.RouterGroup, opportunityUC domain.OpportunityUsecase) {
	handler := &OpportunityHandler{opportunityUC: opportunityUC}

	// PUBLIC routes - listing only shows active postings
	publicOpportunities := public.Group("/opportunities")
	{
		publicOpportunities.GET("", handler.List)
		publicOpportunities.GET("/:id", handler.Get)
	}

	protectedOpportunities := protected.Group("/opportunities")
	{
		protectedOpportunities.POST("", handler.Create)
		protectedOpportunities.PUT("/:id", handler.Update)
		protectedOpportunities.PATCH("/:id", handler.Update)
		protectedOpportunities.DELETE("/:id", handler.Delete)
	}
}

// OpportunityRequest is used for create and partial update. On update a
// present required_skills list replaces the current skills.
type OpportunityRequest struct {
	Title               *string      `json:"title" binding:"omitempty,max=200,no_emoji"`
	Description         *string      `json:"description"`
	Category            *string      `json:"category" binding:"omitempty,oneof=Technology Agriculture Healthcare Education Construction Hospitality Finance Marketing Sales Other"`
	OpportunityType     *string      `json:"opportunity_type" binding:"omitempty,oneof=Full-time Part-time Contract Internship Freelance Gig"`
	County              *string      `json:"county" binding:"omitempty,max=100"`
	City                *string      `json:"city" binding:"omitempty,max=100"`
	RequiredSkills      *[]string    `json:"required_skills" binding:"omitempty,dive,max=100"`
	ExperienceRequired  *string      `json:"experience_required" binding:"omitempty,oneof='Entry Level' '1-2 years' '3-5 years' '5+ years'"`
	SalaryMin           *float64     `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax           *float64     `json:"salary_max" binding:"omitempty,gte=0"`
	ApplicationDeadline *domain.Date `json:"application_deadline"`
	IsActive            *bool        `json:"is_active"`
}

func (r OpportunityRequest) input() domain.OpportunityInput {
	in := domain.OpportunityInput{
		Title:               r.Title,
		Description:         r.Description,
		County:              r.County,
		City:                r.City,
		RequiredSkills:      r.RequiredSkills,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		ApplicationDeadline: r.ApplicationDeadline,
		IsActive:            r.IsActive,
	}
	if r.Category != nil {
		v := domain.OpportunityCategory(*r.Category)
		in.Category = &v
	}
	if r.OpportunityType != nil {
		v := domain.OpportunityType(*r.OpportunityType)
		in.OpportunityType = &v
	}
	if r.ExperienceRequired != nil {
		v := domain.ExperienceLevel(*r.ExperienceRequired)
		in.ExperienceRequired = &v
	}
	return in
}

// List godoc
// @Summary      List opportunities
// @Description  Active opportunities, newest first. Filters are case-insensitive exact matches.
// @Tags         opportunities
// @Produce      json
// @Param        category   query     string  false  "Category"
// @Param        county     query     string  false  "County"
// @Param        type       query     string  false  "Opportunity type"
// @Param        skill      query     string  false  "Required skill name"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        page_size  query     int     false  "Page size (max 100)"  default(20)
// @Success      200  {object}  response.Response
// @Router       /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	filter := domain.OpportunityFilter{
		Category: strings.TrimSpace(c.Query("category")),
		County:   strings.TrimSpace(c.Query("county")),
		Type:     strings.TrimSpace(c.Query("type")),
		Skill:    strings.TrimSpace(c.Query("skill")),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	page, err := h.opportunityUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Opportunities retrieved", page)
}

// Get godoc
// @Summary      Get opportunity
// @Tags         opportunities
// @Produce      json
// @Param        id   path      int  true  "Opportunity ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /opportunities/{id} [get]
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opportunity, err := h.opportunityUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Opportunity retrieved", opportunity)
}

// Create godoc
// @Summary      Create opportunity
// @Description  Post a new opportunity (callers with an employer profile only)
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        opportunity  body      OpportunityRequest  true  "Opportunity"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /opportunities [post]
// @Security     BearerAuth
func (h *OpportunityHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req OpportunityRequest
	if !bindJSON(c, &req) {
		return
	}

	opportunity, err := h.opportunityUC.Create(c.Request.Context(), actor, req.input())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Opportunity created successfully", opportunity)
}

// Update godoc
// @Summary      Update opportunity
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        id           path      int                 true  "Opportunity ID"
// @Param        opportunity  body      OpportunityRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /opportunities/{id} [put]
// @Security     BearerAuth
func (h *OpportunityHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req OpportunityRequest
	if !bindJSON(c, &req) {
		return
	}

	opportunity, err := h.opportunityUC.Update(c.Request.Context(), actor, id, req.input())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Opportunity updated successfully", opportunity)
}

// Delete godoc
// @Summary      Delete opportunity
// @Tags         opportunities
// @Param        id   path      int  true  "Opportunity ID"
// @Success      204
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /opportunities/{id} [delete]
// @Security     BearerAuth
func (h *OpportunityHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.opportunityUC.Delete(c.Request.Context(), actor, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
