package employee

import "time"

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=32"`
	Name       string `json:"name" binding:"required,max=255"`
	Role       string `json:"role" binding:"required"`
	PhotoURL   string `json:"photo_url" binding:"omitempty,url"`
	// FaceImage is the base64-encoded registration photo the embedding is
	// computed from.
	FaceImage string `json:"face_image" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	Role      *string `json:"role"`
	PhotoURL  *string `json:"photo_url" binding:"omitempty,url"`
	FaceImage *string `json:"face_image"`
}

type EmployeeResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	PhotoURL   string     `json:"photo_url,omitempty"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toResponse(e *Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID.String(),
		EmployeeID: e.Code,
		Name:       e.Name,
		Role:       string(e.Role),
		PhotoURL:   e.PhotoURL,
		LastSeen:   e.LastSeen,
		CreatedAt:  e.CreatedAt,
	}
}
