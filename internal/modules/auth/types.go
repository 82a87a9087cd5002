package auth

// RegisterDTO is the registration payload. Roles beyond AUTHOR are requests;
// they only take effect once an admin approves the account.
type RegisterDTO struct {
	Email     string   `json:"email"     binding:"required,email"`
	Password  string   `json:"password"  binding:"required,min=8"`
	Name      string   `json:"name"      binding:"required"`
	Expertise string   `json:"expertise"`
	Roles     []string `json:"roles"`
}

// LoginDTO is the credential payload.
type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ModerateDTO flips an account's status during admin screening.
type ModerateDTO struct {
	Status string `json:"status" binding:"required"` // APPROVED | REJECTED
}

// LoginResult carries the signed token plus the user it identifies.
type LoginResult struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
