package guests

import "time"

// Guest states.
const (
	StateRunning = "running"
	StateStopped = "stopped"
)

// Guest is a managed guest machine record.
type Guest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	State       string    `json:"state"`
	VCPUs       int       `json:"vcpus"`
	MemoryMB    int       `json:"memory_mb"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateGuestRequest creates a new guest, initially stopped.
type CreateGuestRequest struct {
	Name        string `json:"name" validate:"required,hostname_rfc1123,max=64"`
	VCPUs       int    `json:"vcpus" validate:"required,min=1,max=64"`
	MemoryMB    int    `json:"memory_mb" validate:"required,min=64,max=1048576"`
	Description string `json:"description" validate:"omitempty,max=1024"`
}

// UpdateGuestRequest patches mutable guest fields. Nil fields are untouched.
type UpdateGuestRequest struct {
	VCPUs       *int    `json:"vcpus" validate:"omitempty,min=1,max=64"`
	MemoryMB    *int    `json:"memory_mb" validate:"omitempty,min=64,max=1048576"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
}

// ListGuestsResponse wraps the guest collection.
type ListGuestsResponse struct {
	Guests []*Guest `json:"guests"`
}
