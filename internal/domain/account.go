package domain

import (
	"slices"
	"time"
)

// Role grants access to privileged operations
type Role string

const (
	RoleUser        Role = "user"
	RoleStaff       Role = "staff"
	RoleModerator   Role = "moderator"
	RoleResponsable Role = "responsable"
	RoleAdmin       Role = "admin"
)

// KnownRoles lists every role accepted by the account directory
var KnownRoles = []Role{RoleUser, RoleStaff, RoleModerator, RoleResponsable, RoleAdmin}

// CatalogManagers may create, edit and remove catalog items
var CatalogManagers = []Role{RoleAdmin, RoleResponsable}

// AccountManagers may list accounts and adjust balances
var AccountManagers = []Role{RoleAdmin, RoleResponsable}

// StatisticsViewers may read the admin dashboard
var StatisticsViewers = []Role{RoleAdmin, RoleResponsable, RoleModerator, RoleStaff}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return slices.Contains(KnownRoles, r)
}

// Account is a registered community member
type Account struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	ProfilePicture string     `json:"profile_picture"`
	Bio            string     `json:"bio"`
	Roles          []Role     `json:"roles"`
	Points         int64      `json:"points"`
	AcceptEmails   bool       `json:"accept_emails"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasRole reports whether the account holds role
func (a *Account) HasRole(role Role) bool {
	return slices.Contains(a.Roles, role)
}

// HasAnyRole reports whether the account holds at least one of roles
func (a *Account) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if a.HasRole(r) {
			return true
		}
	}
	return false
}

// PrivateProfile is what an account sees about itself
type PrivateProfile struct {
	Account  *Account        `json:"account"`
	Identity *LinkedIdentity `json:"identity,omitempty"`
}

// PublicProfile is the subset of an account visible to other members
type PublicProfile struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	ProfilePicture string          `json:"profile_picture"`
	Bio            string          `json:"bio"`
	Roles          []Role          `json:"roles"`
	CreatedAt      time.Time       `json:"created_at"`
	Identity       *PublicIdentity `json:"identity,omitempty"`
}

// AccountWithIdentity is a row of the admin account listing
type AccountWithIdentity struct {
	Account
	Identity *LinkedIdentity `json:"identity,omitempty"`
}

// NewPublicProfile projects the public subset of an account
func NewPublicProfile(a *Account, identity *LinkedIdentity) *PublicProfile {
	p := &PublicProfile{
		ID:             a.ID,
		Username:       a.Username,
		ProfilePicture: a.ProfilePicture,
		Bio:            a.Bio,
		Roles:          a.Roles,
		CreatedAt:      a.CreatedAt,
	}
	if identity != nil {
		p.Identity = identity.Public()
	}
	return p
}
