package dto

// AuthRequest carries admin credentials for register and login calls.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
