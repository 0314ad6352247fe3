package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobbyhq/jobby-api/internal/dtos"
	"github.com/jobbyhq/jobby-api/internal/models"
	"github.com/jobbyhq/jobby-api/internal/services"
	"github.com/jobbyhq/jobby-api/internal/validation"
)

type ApplicationHandler struct {
	Service *services.ApplicationService
}

// NewApplicationHandler creates the handler with dependencies
func NewApplicationHandler(s *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Service: s}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Create is the POST /applications endpoint
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Service.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List is the GET /applications endpoint. Query params: stage, decision,
// company (substring, case-insensitive), recent=false to disable recency
// ordering.
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := dtos.ListFilter{
		Company:       c.Query("company"),
		OrderByRecent: c.DefaultQuery("recent", "true") != "false",
	}
	if v := c.Query("stage"); v != "" {
		stage := models.Stage(v)
		filter.Stage = &stage
	}
	if v := c.Query("decision"); v != "" {
		decision := models.Decision(v)
		filter.Decision = &decision
	}

	apps, err := h.Service.List(&filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	app, err := h.Service.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Update is the PUT /applications/:id endpoint. The body is sparse: absent
// fields are left untouched.
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Service.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Delete returns the removed record so the client can confirm it.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	app, err := h.Service.Delete(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Transition is the POST /applications/:id/transition endpoint
func (h *ApplicationHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Service.Transition(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Events is the GET /applications/:id/events endpoint
func (h *ApplicationHandler) Events(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	events, err := h.Service.Events(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure: " + err.Error()})
	}
}
