package entity

import "time"

// Valid roles for User. The role travels in the JWT and is checked once at
// the HTTP boundary; use cases receive it as an explicit actor parameter.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
	RoleAgent  = "agent"
)

// User is a console login (belongs to a Company).
// Client users carry ClientID; agent users carry AgentID.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persistence
	Name         string
	Role         string // admin, client, agent
	ClientID     *string
	AgentID      *string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
