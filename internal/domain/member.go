package domain

import "time"

// UnassignedName is the display name used for tasks without an assignee.
// It takes part in alphabetical ordering when sorting by assignee.
const UnassignedName = "Unassigned"

// MemberRole represents a member's role within the workspace.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// IsValid checks if the role is one of the allowed values.
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleMember:
		return true
	default:
		return false
	}
}

// Member represents a person who can be assigned tasks and act on the board.
type Member struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	Token     string
	Role      MemberRole
	CreatedAt time.Time
}
