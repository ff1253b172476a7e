package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/visitor-management/internal"
	visitorDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/visitor"
	"github.com/frahmantamala/visitor-management/internal/visitor"
	"gorm.io/gorm"
)

// VisitorRepository implements the visitor.Repository interface using GORM
type VisitorRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewVisitorRepository(db *gorm.DB, timeout time.Duration) visitor.Repository {
	return &VisitorRepository{db: db, timeout: timeout}
}

// Create inserts a visitor, defaulting check-in time and status when unset.
func (r *VisitorRepository) Create(ctx context.Context, v *visitorDatamodel.Visitor) error {
	ctx, cancel := internal.WithTimeout(ctx, r.timeout)
	defer cancel()

	if v.CheckInTime.IsZero() {
		v.CheckInTime = time.Now().UTC()
	}
	if v.Status == "" {
		v.Status = string(visitor.StatusPending)
	}

	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

// ListAll returns the summary columns of every visitor ordered by id.
func (r *VisitorRepository) ListAll(ctx context.Context) ([]*visitorDatamodel.Visitor, error) {
	ctx, cancel := internal.WithTimeout(ctx, r.timeout)
	defer cancel()

	var visitors []*visitorDatamodel.Visitor
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "contact_info", "purpose_of_visit", "host_employee_name", "status", "photo_path").
		Order("id ASC").
		Find(&visitors).Error
	if err != nil {
		return nil, fmt.Errorf("select visitors: %w", err)
	}
	return visitors, nil
}

// Approve moves a pending visitor to approved and reports whether a row changed.
func (r *VisitorRepository) Approve(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := internal.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).
		Model(&visitorDatamodel.Visitor{}).
		Where("id = ? AND status = ?", id, string(visitor.StatusPending)).
		Update("status", string(visitor.StatusApproved))
	if result.Error != nil {
		return false, fmt.Errorf("approve visitor %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
