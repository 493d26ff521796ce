package recognition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoFace means the image decoded fine but no face was found in it.
	ErrNoFace = errors.New("recognition: no face detected")
	// ErrNoMatch means a face was found but resolved to nobody on file.
	ErrNoMatch = errors.New("recognition: no matching identity")
)

// Encoding is one employee's stored face embedding.
type Encoding struct {
	EmployeeID uuid.UUID
	Code       string
	Name       string
	Data       []byte
	UpdatedAt  time.Time
}

// Encoder computes a face embedding from a registration photo. The actual
// model runs out of process; implementations wrap whatever transport
// reaches it.
type Encoder interface {
	Encode(ctx context.Context, image []byte) ([]byte, error)
}

// Recognizer resolves a capture to a registered identity.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (Match, error)
}

type Match struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Code       string    `json:"employee_code"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
}
