package sessions

// RegisterRequest carries the credentials for a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

// ValidationMessage keeps registration failures on the messages clients
// already match on.
func (RegisterRequest) ValidationMessage(field, tag string) string {
	if field == "password" && tag == "min" {
		return "Password must be at least 4 characters."
	}
	return "Username and password required."
}

// LoginRequest carries the credentials for an existing account.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) ValidationMessage(string, string) string {
	return "Username and password required."
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
