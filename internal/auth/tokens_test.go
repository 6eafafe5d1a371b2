package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/models"
)

// memLedger is an in-memory stand-in for the Mongo token ledger.
type memLedger struct {
	entries    map[string]*models.TokenRecord
	failRecord func(rec *models.TokenRecord) error
}

func newMemLedger() *memLedger {
	return &memLedger{entries: map[string]*models.TokenRecord{}}
}

func (l *memLedger) Record(_ context.Context, rec *models.TokenRecord) error {
	if l.failRecord != nil {
		if err := l.failRecord(rec); err != nil {
			return err
		}
	}
	if rec.JTI == "" || rec.TokenType == "" || rec.UserIdentity == "" {
		return apperrors.SchemaValidation
	}
	if _, ok := l.entries[rec.JTI]; ok {
		return apperrors.ItemAlreadyExists
	}
	rec.Revoked = false
	l.entries[rec.JTI] = rec
	return nil
}

func (l *memLedger) IsRevoked(_ context.Context, jti string) (bool, error) {
	rec, ok := l.entries[jti]
	if !ok {
		return false, apperrors.TokenNotFound
	}
	return rec.Revoked, nil
}

func (l *memLedger) Revoke(_ context.Context, jti, identity string) error {
	rec, ok := l.entries[jti]
	if !ok || rec.UserIdentity != identity {
		return apperrors.TokenNotFound
	}
	rec.Revoked = true
	return nil
}

func (l *memLedger) Remove(_ context.Context, jti string) error {
	delete(l.entries, jti)
	return nil
}

func TestIssuePairRecordsBothTokens(t *testing.T) {
	ledger := newMemLedger()
	svc := NewTokenService("test-secret", ledger)

	pair, err := svc.IssuePair(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	require.Len(t, ledger.entries, 2)
	types := map[string]int{}
	for _, rec := range ledger.entries {
		types[rec.TokenType]++
		assert.False(t, rec.Revoked)
		assert.Equal(t, "user-1", rec.UserIdentity)
	}
	assert.Equal(t, 1, types[models.TokenTypeAccess])
	assert.Equal(t, 1, types[models.TokenTypeRefresh])
}

func TestIssuePairParseRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", newMemLedger())

	pair, err := svc.IssuePair(context.Background(), "user-1")
	require.NoError(t, err)

	access, err := svc.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.TokenTypeAccess, access.TokenType)
	assert.Equal(t, "user-1", access.Subject)
	assert.NotEmpty(t, access.ID)

	refresh, err := svc.Parse(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, models.TokenTypeRefresh, refresh.TokenType)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestIssuePairCompensatesFailedRefreshEntry(t *testing.T) {
	ledger := newMemLedger()
	ledger.failRecord = func(rec *models.TokenRecord) error {
		if rec.TokenType == models.TokenTypeRefresh {
			return errors.New("ledger write failed")
		}
		return nil
	}
	svc := NewTokenService("test-secret", ledger)

	_, err := svc.IssuePair(context.Background(), "user-1")
	require.Error(t, err)
	assert.Empty(t, ledger.entries, "access entry should be removed when the pair cannot be completed")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", newMemLedger())
	verifier := NewTokenService("secret-b", newMemLedger())

	pair, err := issuer.IssuePair(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = verifier.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.BadToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", newMemLedger())
	_, err := svc.Parse("not-a-token")
	assert.ErrorIs(t, err, apperrors.BadToken)
}
