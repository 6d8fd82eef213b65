package domain

import "time"

// RoleRef is the role summary embedded in user records.
type RoleRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a platform account as listed on the users screen.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	LevelJlpt *int      `json:"levelJlpt"`
	Role      RoleRef   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoleName returns the parsed role of the user.
func (u User) RoleName() Role { return ParseRole(u.Role.Name) }
