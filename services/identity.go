package services

import (
	"time"

	"hotel-ops/models"
)

// Identity is the authenticated caller. It is resolved per request from the
// access token and passed explicitly to whatever needs it.
type Identity struct {
	SessionID   string    `json:"-"`
	SubjectID   string    `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (i Identity) Can(permission string) bool {
	for _, p := range i.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (i Identity) IsOwner() bool { return i.Kind == models.SubjectOwner }
