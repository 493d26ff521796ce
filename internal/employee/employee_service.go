package employee

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/recognition"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, code string) error
	Get(ctx context.Context, code string) (EmployeeResponse, error)
	List(ctx context.Context, page, perPage int) ([]EmployeeResponse, int64, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	encoder recognition.Encoder
	cache   *recognition.EncodingCache
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	encoder recognition.Encoder,
	cache *recognition.EncodingCache,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		encoder: encoder,
		cache:   cache,
		outbox:  outbox,
		logger:  l,
	}
}

// Create registers an employee in two phases: the embedding is computed
// before the transaction opens, so a slow or failing model call never
// holds row locks, then the row and its registration event commit
// together.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	role := Role(req.Role)
	if !role.Valid() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	image, err := base64.StdEncoding.DecodeString(req.FaceImage)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidFaceImage
	}

	encoding, err := s.encoder.Encode(ctx, image)
	if err != nil {
		if errors.Is(err, recognition.ErrNoFace) {
			return EmployeeResponse{}, employeeerrors.ErrNoFaceDetected
		}
		s.logger.Error("face encoding failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:           uuid.New(),
		Code:         req.EmployeeID,
		Name:         req.Name,
		Role:         role,
		PhotoURL:     req.PhotoURL,
		FaceEncoding: encoding,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := s.queueRegisteredEvent(ctx, tx, emp); err != nil {
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	if s.cache != nil {
		s.cache.Store(ctx, recognition.Encoding{
			EmployeeID: emp.ID,
			Code:       emp.Code,
			Name:       emp.Name,
			Data:       emp.FaceEncoding,
			UpdatedAt:  time.Now(),
		})
	}

	s.logger.Info("employee registered",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", emp.Code),
		zap.String("role", string(emp.Role)),
	)
	return toResponse(emp), nil
}

func (s *service) queueRegisteredEvent(ctx context.Context, tx *sql.Tx, emp *Employee) error {
	event := events.EmployeeRegisteredEvent{
		EventType:  "employee_registered",
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: emp.Code,
		Name:       emp.Name,
		Role:       string(emp.Role),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeRegisteredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	emp, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if IsNotFound(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Role != nil {
		role := Role(*req.Role)
		if !role.Valid() {
			return EmployeeResponse{}, employeeerrors.ErrInvalidRole
		}
		emp.Role = role
	}
	if req.PhotoURL != nil {
		emp.PhotoURL = *req.PhotoURL
	}
	if req.FaceImage != nil && *req.FaceImage != "" {
		image, err := base64.StdEncoding.DecodeString(*req.FaceImage)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidFaceImage
		}
		encoding, err := s.encoder.Encode(ctx, image)
		if err != nil {
			if errors.Is(err, recognition.ErrNoFace) {
				return EmployeeResponse{}, employeeerrors.ErrNoFaceDetected
			}
			return EmployeeResponse{}, err
		}
		emp.FaceEncoding = encoding
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.cache != nil && len(emp.FaceEncoding) > 0 {
		s.cache.Store(ctx, recognition.Encoding{
			EmployeeID: emp.ID,
			Code:       emp.Code,
			Name:       emp.Name,
			Data:       emp.FaceEncoding,
			UpdatedAt:  time.Now(),
		})
	}

	return toResponse(emp), nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	emp, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if IsNotFound(err) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, emp.ID); err != nil {
		if IsNotFound(err) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	if s.cache != nil {
		s.cache.Delete(ctx, emp.ID)
	}

	s.logger.Info("employee removed", zap.String("employee_id", emp.Code))
	return nil
}

func (s *service) Get(ctx context.Context, code string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if IsNotFound(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *service) List(ctx context.Context, page, perPage int) ([]EmployeeResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	rows, total, err := s.repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}

	out := make([]EmployeeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, total, nil
}
