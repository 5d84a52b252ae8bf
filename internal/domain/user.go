package domain

import "time"

// Role is the set of account roles. Authorization decisions switch
// exhaustively over this type rather than comparing raw strings.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleOperator  Role = "operator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDeveloper, RoleOperator:
		return true
	}
	return false
}

// CanPublishAgents reports whether the role may move an agent to published.
func (r Role) CanPublishAgents() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser, RoleDeveloper, RoleOperator:
		return false
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	OpenID         string    `json:"openId"`
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	LoginMethod    *string   `json:"loginMethod"`
	Role           Role      `json:"role"`
	OrganizationID *int64    `json:"organizationId,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	LastSignedIn   time.Time `json:"lastSignedIn"`
}

// UserUpsert carries the fields a sign-in explicitly provides. Absent fields
// are left untouched when the row already exists.
type UserUpsert struct {
	OpenID       string
	Name         Opt[*string]
	Email        Opt[*string]
	LoginMethod  Opt[*string]
	Role         Opt[Role]
	LastSignedIn Opt[time.Time]
}
