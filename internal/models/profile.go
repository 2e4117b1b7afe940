package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile holds the per-user contact fields and role. It shares the identity's
// UUID and is provisioned at registration; EnsureProfile in the cart service
// backfills rows for identities created before provisioning existed.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;index" json:"email"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Role      string    `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
