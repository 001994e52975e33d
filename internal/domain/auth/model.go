package auth

const TokenTypeBearer = "bearer"

type Token struct {
	AccessToken string
	TokenType   string
}
