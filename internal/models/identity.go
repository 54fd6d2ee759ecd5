package models

import "github.com/golang-jwt/jwt"

// Identity is the verified caller as issued by the external auth provider.
// TokenIdentifier is stable per user and keys the users table.
type Identity struct {
	TokenIdentifier string `json:"tokenIdentifier"`
	Subject         string `json:"subject"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Username        string `json:"username,omitempty"`
	PictureURL      string `json:"pictureUrl,omitempty"`
}

type Claims struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Picture  string `json:"picture,omitempty"`
	jwt.StandardClaims
}
