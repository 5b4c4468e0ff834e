package model

// TokenManager issues and validates service tokens for API callers.
type TokenManager interface {
	GenerateAccessToken(caller string) (string, error)
	ParseAccessToken(token string) (string, error)
}
