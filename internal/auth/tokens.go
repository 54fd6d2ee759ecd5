package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"skillsyncBack/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Manager verifies the identity provider's HS256 session tokens.
type Manager struct {
	signingKey string
	issuer     string
}

func NewManager(signingKey, issuer string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}
	return &Manager{signingKey: signingKey, issuer: issuer}, nil
}

// NewJWT signs claims for the given identity. Used by the CLI and tests; in
// production tokens are minted by the identity provider.
func (m *Manager) NewJWT(identity models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		Name:     identity.Name,
		Email:    identity.Email,
		Username: identity.Username,
		Picture:  identity.PictureURL,
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.Subject,
			Issuer:    m.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	})
	return token.SignedString([]byte(m.signingKey))
}

// Parse verifies accessToken and returns the caller identity. The token
// identifier is "issuer|subject", matching what the users table stores.
func (m *Manager) Parse(accessToken string) (models.Identity, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}
	if m.issuer != "" && !claims.VerifyIssuer(m.issuer, true) {
		return models.Identity{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return models.Identity{
		TokenIdentifier: TokenIdentifier(claims.Issuer, claims.Subject),
		Subject:         claims.Subject,
		Name:            claims.Name,
		Email:           claims.Email,
		Username:        claims.Username,
		PictureURL:      claims.Picture,
	}, nil
}

func TokenIdentifier(issuer, subject string) string {
	if issuer == "" {
		return subject
	}
	return strings.TrimSuffix(issuer, "/") + "|" + subject
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
