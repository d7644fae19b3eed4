package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin     = "admin"
	RolePM        = "pm"
	RoleReceiving = "receiving"
	RoleGuest     = "guest"
)

// User usuario autenticable. El ID es un UUID en texto.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre visible en correos y reportes.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
