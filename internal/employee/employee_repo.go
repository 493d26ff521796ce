package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	List(ctx context.Context, limit, offset int) ([]Employee, int64, error)
	ListEncodings(ctx context.Context, since *time.Time) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	if err := r.db.WithContext(ctx).First(&e, "employee_id = ?", code).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Employee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

// ListEncodings loads the columns the recognition cache needs. A nil since
// returns the full roster; otherwise only rows updated after it.
func (r *repository) ListEncodings(ctx context.Context, since *time.Time) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Select("id", "employee_id", "name", "face_encoding", "updated_at").
		Where("face_encoding IS NOT NULL")
	if since != nil {
		q = q.Where("updated_at > ?", *since)
	}

	var rows []Employee
	err := q.Find(&rows).Error
	return rows, err
}

// IsNotFound reports whether err is the driver's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
