package leave

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, row *LeaveHistory) error
	SumAll(ctx context.Context) (int64, error)
	SumForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, row *LeaveHistory) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"leaves_taken", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) SumAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&LeaveHistory{}).
		Select("COALESCE(SUM(leaves_taken), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) SumForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&LeaveHistory{}).
		Select("COALESCE(SUM(leaves_taken), 0)").
		Where("employee_id = ?", employeeID).
		Where("month LIKE ?", fmt.Sprintf("%04d-%%", year)).
		Scan(&total).Error
	return total, err
}
