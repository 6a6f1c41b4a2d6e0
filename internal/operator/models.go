package operator

import "github.com/golang-jwt/jwt/v4"

// JWTClaims represents operator token claims
type JWTClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// LoginResponse carries the operator session token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
