// Package auth mints and parses the JWT pairs backing the API and keeps the
// token ledger in step with every issuance.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/internal/repositories"
)

// Fixed token lifetimes. Access tokens are long-lived, which is why the
// ledger exists: they must be individually revocable before expiry.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 60 * 24 * time.Hour
)

// TokenClaims are custom claims extending standard jwt.RegisteredClaims.
// Subject carries the user id, ID the jti used as the revocation key.
type TokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is one access/refresh issuance
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService signs, parses and ledgers tokens
type TokenService struct {
	secret []byte
	ledger repositories.TokenRepository
}

// NewTokenService creates a new TokenService
func NewTokenService(secret string, ledger repositories.TokenRepository) *TokenService {
	return &TokenService{secret: []byte(secret), ledger: ledger}
}

// IssuePair mints an access and a refresh token for identity and records
// both in the ledger before returning. Recording is all-or-nothing: if the
// refresh entry cannot be written, the access entry is removed and the
// issuance fails as a unit.
func (s *TokenService) IssuePair(ctx context.Context, identity string) (*TokenPair, error) {
	access, accessJTI, err := s.issue(ctx, identity, models.TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, _, err := s.issue(ctx, identity, models.TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		_ = s.ledger.Remove(ctx, accessJTI)
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess mints and ledgers a single access token. Used by refresh.
func (s *TokenService) IssueAccess(ctx context.Context, identity string) (string, error) {
	token, _, err := s.issue(ctx, identity, models.TokenTypeAccess, AccessTokenTTL)
	return token, err
}

func (s *TokenService) issue(ctx context.Context, identity, tokenType string, ttl time.Duration) (string, string, error) {
	now := time.Now()
	expires := now.Add(ttl)
	jti := uuid.NewString()

	claims := &TokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   identity,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	rec := &models.TokenRecord{
		JTI:          jti,
		TokenType:    tokenType,
		UserIdentity: identity,
		Expires:      expires,
	}
	if err := s.ledger.Record(ctx, rec); err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// Parse validates the signature and standard claims of a token string
func (s *TokenService) Parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.BadToken
	}
	return claims, nil
}
