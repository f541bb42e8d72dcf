package v1

import (
	"net/http"

	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	employerUC domain.EmployerUsecase
}

func NewEmployerHandler(protected *gin.RouterGroup, employerUC domain.EmployerUsecase) {
	handler := &EmployerHandler{employerUC: employerUC}

	employers := protected.Group("/employers")
	{
		employers.GET("/profile", handler.GetProfile)
		employers.POST("/profile", handler.CreateProfile)
		employers.PUT("/profile", handler.UpdateProfile)
		employers.PATCH("/profile", handler.UpdateProfile)
	}
}

// EmployerProfileRequest is shared by create and partial update; omitted
// fields are left unchanged. verified is not accepted.
type EmployerProfileRequest struct {
	CompanyName        *string `json:"company_name" binding:"omitempty,max=200,not_blank,no_emoji"`
	CompanyDescription *string `json:"company_description"`
	Industry           *string `json:"industry" binding:"omitempty,oneof=tech finance education healthcare retail manufacturing agriculture other"`
	CompanyWebsite     *string `json:"company_website" binding:"omitempty,url"`
	CompanyEmail       *string `json:"company_email" binding:"omitempty,email"`
	CompanyPhone       *string `json:"company_phone" binding:"omitempty,valid_phone"`
	County             *string `json:"county" binding:"omitempty,max=100"`
	City               *string `json:"city" binding:"omitempty,max=100"`
	Address            *string `json:"address"`
}

func (r EmployerProfileRequest) input() domain.EmployerProfileInput {
	in := domain.EmployerProfileInput{
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		CompanyWebsite:     r.CompanyWebsite,
		CompanyEmail:       r.CompanyEmail,
		CompanyPhone:       r.CompanyPhone,
		County:             r.County,
		City:               r.City,
		Address:            r.Address,
	}
	if r.Industry != nil {
		industry := domain.Industry(*r.Industry)
		in.Industry = &industry
	}
	return in
}

// GetProfile godoc
// @Summary      Get employer profile
// @Tags         employers
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/profile [get]
// @Security     BearerAuth
func (h *EmployerHandler) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	profile, err := h.employerUC.GetProfile(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer profile retrieved", profile)
}

// CreateProfile godoc
// @Summary      Create employer profile
// @Description  Create the caller's company profile (employers only, once)
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        profile  body      EmployerProfileRequest  true  "Company profile"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /employers/profile [post]
// @Security     BearerAuth
func (h *EmployerHandler) CreateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req EmployerProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.employerUC.CreateProfile(c.Request.Context(), actor, req.input())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Employer profile created", profile)
}

// UpdateProfile godoc
// @Summary      Update employer profile
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        profile  body      EmployerProfileRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/profile [put]
// @Security     BearerAuth
func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req EmployerProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.employerUC.UpdateProfile(c.Request.Context(), actor, req.input())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer profile updated", profile)
}
