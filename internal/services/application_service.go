package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobbyhq/jobby-api/internal/dtos"
	"github.com/jobbyhq/jobby-api/internal/models"
	"github.com/jobbyhq/jobby-api/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		DB: db,
	}
}

// Create validates the payload, fills in defaults and persists a new record.
// last_status_at starts at creation time so brand-new applications sort as
// most recent.
func (s *ApplicationService) Create(req *dtos.ApplicationCreateRequest) (*models.JobApplication, error) {
	company, err := validation.TrimNonEmpty("company_name", req.CompanyName)
	if err != nil {
		return nil, err
	}
	role, err := validation.TrimNonEmpty("role_title", req.RoleTitle)
	if err != nil {
		return nil, err
	}
	location, err := validation.Optional("location", req.Location)
	if err != nil {
		return nil, err
	}
	source, err := validation.Optional("source", req.Source)
	if err != nil {
		return nil, err
	}

	var applyURL *string
	if req.ApplyURL != nil {
		applyURL, err = validation.NormalizeURL(*req.ApplyURL)
		if err != nil {
			return nil, err
		}
	}

	stage := models.StageApplied
	if req.Stage != nil {
		stage = *req.Stage
	}
	if !stage.Valid() {
		return nil, &validation.Error{Field: "stage", Message: fmt.Sprintf("invalid stage %q", stage)}
	}

	decision := models.DecisionPending
	if req.Decision != nil {
		decision = *req.Decision
	}
	if !decision.Valid() {
		return nil, &validation.Error{Field: "decision", Message: fmt.Sprintf("invalid decision %q", decision)}
	}

	priority := 3
	if req.Priority != nil {
		priority = *req.Priority
	}
	if err := validation.Priority(priority); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	obj := &models.JobApplication{
		CompanyName:  company,
		RoleTitle:    role,
		Location:     location,
		Source:       source,
		ApplyURL:     applyURL,
		Stage:        stage,
		Decision:     decision,
		Priority:     priority,
		Notes:        req.Notes,
		AppliedAt:    req.AppliedAt,
		LastStatusAt: &now,
	}
	if err := s.DB.Create(obj).Error; err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *ApplicationService) Get(id uint) (*models.JobApplication, error) {
	var obj models.JobApplication
	if err := s.DB.First(&obj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &obj, nil
}

// List applies the optional filters conjunctively. With OrderByRecent the
// result is ordered by last_status_at descending, NULLs at the end, id as
// the tie-break (id order equals insertion order for an autoincrement key).
func (s *ApplicationService) List(f *dtos.ListFilter) ([]models.JobApplication, error) {
	q := s.DB.Model(&models.JobApplication{})

	if f.Stage != nil {
		if !f.Stage.Valid() {
			return nil, &validation.Error{Field: "stage", Message: fmt.Sprintf("invalid stage %q", *f.Stage)}
		}
		q = q.Where("stage = ?", *f.Stage)
	}
	if f.Decision != nil {
		if !f.Decision.Valid() {
			return nil, &validation.Error{Field: "decision", Message: fmt.Sprintf("invalid decision %q", *f.Decision)}
		}
		q = q.Where("decision = ?", *f.Decision)
	}
	if f.Company != "" {
		q = q.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(f.Company)+"%")
	}

	if f.OrderByRecent {
		q = q.Order("last_status_at DESC NULLS LAST").Order("id ASC")
	} else {
		q = q.Order("id ASC")
	}

	var out []models.JobApplication
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update is a sparse merge: only fields present in the request are applied,
// each re-validated. It never stamps last_status_at; editing metadata is not
// a status move.
func (s *ApplicationService) Update(id uint, req *dtos.ApplicationUpdateRequest) (*models.JobApplication, error) {
	var obj models.JobApplication
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := loadForUpdate(tx, &obj, id); err != nil {
			return err
		}

		if req.CompanyName != nil {
			v, err := validation.TrimNonEmpty("company_name", *req.CompanyName)
			if err != nil {
				return err
			}
			obj.CompanyName = v
		}
		if req.RoleTitle != nil {
			v, err := validation.TrimNonEmpty("role_title", *req.RoleTitle)
			if err != nil {
				return err
			}
			obj.RoleTitle = v
		}
		if req.Location != nil {
			v, err := validation.Optional("location", req.Location)
			if err != nil {
				return err
			}
			obj.Location = v
		}
		if req.Source != nil {
			v, err := validation.Optional("source", req.Source)
			if err != nil {
				return err
			}
			obj.Source = v
		}
		if req.ApplyURL != nil {
			v, err := validation.NormalizeURL(*req.ApplyURL)
			if err != nil {
				return err
			}
			obj.ApplyURL = v
		}
		if req.Stage != nil {
			if !req.Stage.Valid() {
				return &validation.Error{Field: "stage", Message: fmt.Sprintf("invalid stage %q", *req.Stage)}
			}
			obj.Stage = *req.Stage
		}
		if req.Decision != nil {
			if !req.Decision.Valid() {
				return &validation.Error{Field: "decision", Message: fmt.Sprintf("invalid decision %q", *req.Decision)}
			}
			obj.Decision = *req.Decision
		}
		if req.Priority != nil {
			if err := validation.Priority(*req.Priority); err != nil {
				return err
			}
			obj.Priority = *req.Priority
		}
		if req.Notes != nil {
			obj.Notes = req.Notes
		}
		if req.AppliedAt != nil {
			obj.AppliedAt = req.AppliedAt
		}

		return tx.Save(&obj).Error
	})
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// Delete removes the record and returns it so the caller can confirm what
// was deleted.
func (s *ApplicationService) Delete(id uint) (*models.JobApplication, error) {
	var obj models.JobApplication
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := loadForUpdate(tx, &obj, id); err != nil {
			return err
		}
		return tx.Delete(&obj).Error
	})
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// Transition applies stage/decision changes and an optional note in one
// transaction. last_status_at moves only when stage or decision actually
// changed value; a note alone never stamps it. updated_at refreshes on every
// call. Repeating the current stage/decision is a no-op for recency.
func (s *ApplicationService) Transition(id uint, req *dtos.TransitionRequest) (*models.JobApplication, error) {
	if req.Stage != nil && !req.Stage.Valid() {
		return nil, &validation.Error{Field: "stage", Message: fmt.Sprintf("invalid stage %q", *req.Stage)}
	}
	if req.Decision != nil && !req.Decision.Valid() {
		return nil, &validation.Error{Field: "decision", Message: fmt.Sprintf("invalid decision %q", *req.Decision)}
	}

	var obj models.JobApplication
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := loadForUpdate(tx, &obj, id); err != nil {
			return err
		}

		changed := false
		event := models.ApplicationEvent{
			ApplicationID: obj.ID,
			FromStage:     obj.Stage,
			FromDecision:  obj.Decision,
		}

		if req.Stage != nil && *req.Stage != obj.Stage {
			obj.Stage = *req.Stage
			changed = true
		}
		if req.Decision != nil && *req.Decision != obj.Decision {
			obj.Decision = *req.Decision
			changed = true
		}

		if req.Note != nil {
			if note := strings.TrimSpace(*req.Note); note != "" {
				stamp := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
				merged := ""
				if obj.Notes != nil {
					merged = *obj.Notes
				}
				merged += fmt.Sprintf("\n[%s] %s", stamp, note)
				obj.Notes = &merged
			}
		}

		if changed {
			now := time.Now().UTC()
			obj.LastStatusAt = &now

			event.ToStage = obj.Stage
			event.ToDecision = obj.Decision
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		// Save also refreshes updated_at when nothing changed; the record
		// was still touched.
		return tx.Save(&obj).Error
	})
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// Events lists the stage/decision history of an application, newest first.
func (s *ApplicationService) Events(id uint) ([]models.ApplicationEvent, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	var events []models.ApplicationEvent
	if err := s.DB.Where("application_id = ?", id).Order("id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// loadForUpdate reads a record inside tx, row-locked on postgres so two
// concurrent transitions on the same id serialize instead of interleaving.
// sqlite rejects FOR UPDATE; its single-writer lock already gives the same
// guarantee there.
func loadForUpdate(tx *gorm.DB, obj *models.JobApplication, id uint) error {
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := tx.First(obj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
