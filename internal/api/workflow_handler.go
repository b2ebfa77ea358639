package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/service"
)

// WorkflowHandler handles workflow endpoints
type WorkflowHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(services *service.Services, log zerolog.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		services: services,
		log:      log.With().Str("handler", "workflow").Logger(),
	}
}

// List handles GET /api/workflows
func (h *WorkflowHandler) List(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	workflows, err := h.services.Workflow.List(c.Request.Context(), caller.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, workflows)
}

// Create handles POST /api/workflows.
// The owner is always the authenticated caller; owner fields in the body are ignored.
func (h *WorkflowHandler) Create(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	var req models.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	req.CallerEmail = caller.Email

	wf, err := h.services.Workflow.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, wf)
}

// ToggleStatus handles PUT /api/workflows/:id/status
func (h *WorkflowHandler) ToggleStatus(c *gin.Context) {
	var req models.ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	wf, err := h.services.Workflow.ToggleStatus(c.Request.Context(), c.Param("id"), req.NewStatus)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}
