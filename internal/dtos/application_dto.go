package dtos

import (
	"time"

	"github.com/jobbyhq/jobby-api/internal/models"
)

type ApplicationCreateRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	RoleTitle   string `json:"role_title" binding:"required"`

	// Optional Fields
	Location  *string          `json:"location"`
	Source    *string          `json:"source"`
	ApplyURL  *string          `json:"apply_url"`
	Stage     *models.Stage    `json:"stage"`    // Defaults to APPLIED
	Decision  *models.Decision `json:"decision"` // Defaults to PENDING
	Priority  *int             `json:"priority"` // Defaults to 3
	Notes     *string          `json:"notes"`
	AppliedAt *time.Time       `json:"applied_at"`
}

// ApplicationUpdateRequest is a sparse update: every field is a pointer and
// only keys present in the JSON body are applied. It never touches
// last_status_at; only the transition endpoint stamps that.
type ApplicationUpdateRequest struct {
	CompanyName *string          `json:"company_name"`
	RoleTitle   *string          `json:"role_title"`
	Location    *string          `json:"location"`
	Source      *string          `json:"source"`
	ApplyURL    *string          `json:"apply_url"`
	Stage       *models.Stage    `json:"stage"`
	Decision    *models.Decision `json:"decision"`
	Priority    *int             `json:"priority"`
	Notes       *string          `json:"notes"`
	AppliedAt   *time.Time       `json:"applied_at"`
}

type TransitionRequest struct {
	Stage    *models.Stage    `json:"stage"`
	Decision *models.Decision `json:"decision"`
	Note     *string          `json:"note"`
}

// ListFilter narrows GET /applications. All filters are optional and
// combined with AND.
type ListFilter struct {
	Stage         *models.Stage
	Decision      *models.Decision
	Company       string
	OrderByRecent bool
}
