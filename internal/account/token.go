package account

import (
	"artisan/pkg/domain"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RSAIssuer signs RS256 tokens whose subject is the user ID.
type RSAIssuer struct {
	key *rsa.PrivateKey
	ttl time.Duration
	now func() time.Time
}

var _ TokenIssuer = (*RSAIssuer)(nil)

// NewTokenIssuer parses the PEM encoded private key. Tokens expire after ttl.
func NewTokenIssuer(privateKeyPEM string, ttl time.Duration) (*RSAIssuer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return &RSAIssuer{key: key, ttl: ttl, now: time.Now}, nil
}

func (i *RSAIssuer) Issue(userID domain.UserID) (string, error) {
	return i.IssueFor(userID.String(), i.ttl)
}

// IssueFor signs a token for an arbitrary subject and ttl.
func (i *RSAIssuer) IssueFor(subject string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("could not sign JWT: %w", err)
	}

	return signed, nil
}
