package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	// RoleUser is assigned at registration, before a profile is completed.
	RoleUser      Role = "USER"
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// User models a registered account.
type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Username        string    `json:"username,omitempty"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Role            Role      `json:"role"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Identity is the trusted view of the caller produced by resolving a session.
// It is derived from User and never persisted on its own.
type Identity struct {
	UserID          int64  `json:"id"`
	Email           string `json:"email"`
	Username        string `json:"username,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Role            Role   `json:"role"`
	IsEmailVerified bool   `json:"is_email_verified"`
}

// IdentityOf builds the public identity of u.
func IdentityOf(u *User) *Identity {
	return &Identity{
		UserID:          u.ID,
		Email:           u.Email,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
	}
}

// HasRole reports whether the identity holds any of roles.
func (i *Identity) HasRole(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// DisplayName is used in notification emails.
func (i *Identity) DisplayName() string {
	switch {
	case i.FirstName != "" && i.LastName != "":
		return i.FirstName + " " + i.LastName
	case i.FirstName != "":
		return i.FirstName
	case i.Username != "":
		return i.Username
	}
	return i.Email
}
