package dto

// RegisterRequest describes the registration payload.
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Country  string `json:"country"`
	Referrer string `json:"referrer,omitempty"`
}

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
