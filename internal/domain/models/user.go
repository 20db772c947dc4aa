package models

// User is a console account.
type User struct {
	ID    int64  `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name" validate:"required"`
	Email string `json:"email" mapstructure:"email" validate:"required,email"`
	Role  string `json:"role" mapstructure:"role"`
}

func (u User) EntityID() int64     { return u.ID }
func (u User) DisplayName() string { return u.Name }

// RoleColor maps a role to the badge colour the user table shows.
func RoleColor(role string) string {
	switch role {
	case "admin":
		return "red"
	case "manager":
		return "blue"
	case "seller":
		return "green"
	default:
		return "gray"
	}
}

// Credentials are posted to the login endpoint.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is what the backend returns for valid credentials.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
