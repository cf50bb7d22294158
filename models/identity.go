package models

// Role is the caller's role as recorded by the identity provider
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is a verified caller as returned by the identity provider.
// UserID is the provider's subject and doubles as the users table primary key.
type Identity struct {
	UserID   string
	Provider string
	Claims   map[string]any
}
