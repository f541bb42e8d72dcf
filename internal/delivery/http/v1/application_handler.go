package v1

import (
	"net/http"

	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	opportunities := r.Group("/opportunities")
	{
		opportunities.POST("/:id/apply", handler.Apply)
		opportunities.GET("/applications/my", handler.MyApplications)
		opportunities.GET("/applications/employer", handler.EmployerApplications)
		opportunities.GET("/applications/:id", handler.Get)
		opportunities.PUT("/applications/:id", handler.UpdateStatus)
		opportunities.PATCH("/applications/:id", handler.UpdateStatus)
	}
}

// ApplyRequest is the request payload for applying to an opportunity
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to an opportunity
// @Description  Submit an application (youth only, once per opportunity)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Opportunity ID"
// @Param        body  body      ApplyRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /opportunities/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	opportunityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationUC.Apply(c.Request.Context(), actor, opportunityID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", application)
}

// MyApplications godoc
// @Summary      My applications
// @Description  Applications submitted by the calling youth, newest first
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /opportunities/applications/my [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	applications, err := h.applicationUC.MyApplications(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// EmployerApplications godoc
// @Summary      Received applications
// @Description  Applications to the calling employer's opportunities
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /opportunities/applications/employer [get]
// @Security     BearerAuth
func (h *ApplicationHandler) EmployerApplications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	applications, err := h.applicationUC.EmployerApplications(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// Get godoc
// @Summary      Get application
// @Description  Visible to the applicant and the employer who owns the opportunity
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /opportunities/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	application, err := h.applicationUC.Get(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", application)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Owning employer only. Moving to accepted or rejected emails the applicant.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /opportunities/applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationUC.UpdateStatus(c.Request.Context(), actor, id, domain.ApplicationStatus(req.Status))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", application)
}
