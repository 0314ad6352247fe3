package models

import (
	"time"

	"gorm.io/gorm"
)

// Stage is the application's position in the hiring pipeline.
// Stored as its name string so the column survives schema changes.
type Stage string

const (
	StageApplied     Stage = "APPLIED"
	StageUnderReview Stage = "UNDER_REVIEW"
	StageOA          Stage = "OA"
	StageInterview   Stage = "INTERVIEW"
	StageOffer       Stage = "OFFER"
)

func (s Stage) Valid() bool {
	switch s {
	case StageApplied, StageUnderReview, StageOA, StageInterview, StageOffer:
		return true
	}
	return false
}

// Decision is the pending or terminal outcome of an application.
type Decision string

const (
	DecisionPending       Decision = "PENDING"
	DecisionRejected      Decision = "REJECTED"
	DecisionOfferAccepted Decision = "OFFER_ACCEPTED"
	DecisionWithdrawn     Decision = "WITHDRAWN"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionPending, DecisionRejected, DecisionOfferAccepted, DecisionWithdrawn:
		return true
	}
	return false
}

type JobApplication struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyName string  `gorm:"size:200;not null" json:"company_name"`
	RoleTitle   string  `gorm:"size:200;not null" json:"role_title"`
	Location    *string `gorm:"size:200" json:"location"`
	Source      *string `gorm:"size:200" json:"source"`
	ApplyURL    *string `gorm:"size:500" json:"apply_url"`

	Stage    Stage    `gorm:"type:varchar(32);not null;default:'APPLIED';index:ix_job_apps_stage" json:"stage"`
	Decision Decision `gorm:"type:varchar(32);not null;default:'PENDING';index:ix_job_apps_decision" json:"decision"`

	// 1 (highest) .. 5 (lowest)
	Priority int `gorm:"not null;default:3" json:"priority"`

	// Append-only log; the transition endpoint adds timestamped lines.
	Notes *string `gorm:"type:text" json:"notes"`

	AppliedAt    *time.Time `json:"applied_at"`
	LastStatusAt *time.Time `gorm:"index:ix_job_apps_last_status_at" json:"last_status_at"`
}

// ApplicationEvent records a stage/decision move so an application's history
// can be replayed. One row per transition call that changed something.
type ApplicationEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ApplicationID uint `gorm:"not null;index" json:"application_id"`

	FromStage    Stage    `gorm:"type:varchar(32)" json:"from_stage"`
	ToStage      Stage    `gorm:"type:varchar(32)" json:"to_stage"`
	FromDecision Decision `gorm:"type:varchar(32)" json:"from_decision"`
	ToDecision   Decision `gorm:"type:varchar(32)" json:"to_decision"`
}
