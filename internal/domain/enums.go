package domain

import "strings"

// Role is the role name carried by the backend's access token.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleLearner Role = "USER"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleLearner:
		return true
	}
	return false
}

// ParseRole normalizes a role name from a token claim. Unknown names are
// returned as-is so the guard can reject them.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// PublishStatus is the lifecycle state shared by tests, test sets and banners.
type PublishStatus string

const (
	StatusDraft    PublishStatus = "DRAFT"
	StatusActive   PublishStatus = "ACTIVE"
	StatusInactive PublishStatus = "INACTIVE"
	StatusExpired  PublishStatus = "EXPIRED"
)

func (s PublishStatus) String() string { return string(s) }

func (s PublishStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusInactive, StatusExpired:
		return true
	}
	return false
}

// JLPTLevel is the N-level of a study item. N5 is the easiest.
type JLPTLevel int

const (
	LevelN5 JLPTLevel = 5
	LevelN4 JLPTLevel = 4
	LevelN3 JLPTLevel = 3
	LevelN2 JLPTLevel = 2
	LevelN1 JLPTLevel = 1
)

func (l JLPTLevel) IsValid() bool { return l >= LevelN1 && l <= LevelN5 }
