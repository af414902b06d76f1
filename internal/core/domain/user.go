package domain

const TypeAdmin = "Admin"

// User models the account returned by the signin endpoint. The backend owns
// it; the client only reads.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type,omitempty"`
}

// IsAdmin reports whether the account may manage the product catalog.
func (u *User) IsAdmin() bool {
	return u != nil && u.Type == TypeAdmin
}

// Credentials is both the signin request body and the single persisted
// credential entry used for session bootstrap.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration is the signup form. ConfirmPassword is checked client-side
// and never serialized.
type Registration struct {
	Name            string `json:"name"     validate:"required"`
	Email           string `json:"email"    validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-"        validate:"required,eqfield=Password"`
}
