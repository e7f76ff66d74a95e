package api

// messageResponse is the confirmation payload for mutations
type messageResponse struct {
	Message string `json:"message"`
}

// tokenResponse is the login success payload
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userOut is the public projection of an account
type userOut struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// loginRequest carries login credentials
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
