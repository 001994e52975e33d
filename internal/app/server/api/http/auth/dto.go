package auth

type registerInput struct {
	Body RegisterRequest
}

type RegisterRequest struct {
	Email      string `json:"email" maxLength:"254" doc:"Account e-mail address"`
	Password   string `json:"password" doc:"Account password, 8 to 128 characters"`
	MasterSalt []byte `json:"master_salt,omitempty" nullable:"true" doc:"Client-side key derivation salt, base64"`
}

// loginInput takes the raw body so both form and JSON logins are accepted.
type loginInput struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

type loginJSON struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenOutput struct {
	Body TokenResponse
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type logoutOutput struct {
	Body LogoutResponse
}

type LogoutResponse struct {
	Detail string `json:"detail" example:"logged_out"`
}
