package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shelvit/backend/internal/auth"
	"github.com/shelvit/backend/internal/middleware"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/validators"
)

type testEnv struct {
	e      *echo.Echo
	users  *fakeUserRepo
	boards *fakeBoardRepo
	items  *fakeItemRepo
	ledger *fakeTokenRepo
	tokens *auth.TokenService

	auth    *AuthHandler
	board   *BoardHandler
	item    *ItemHandler
	importh *ImportHandler
}

func newTestEnv() *testEnv {
	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newFakeUserRepo()
	boards := newFakeBoardRepo()
	items := newFakeItemRepo()
	ledger := newFakeTokenRepo()
	tokens := auth.NewTokenService("test-secret", ledger)

	return &testEnv{
		e:       e,
		users:   users,
		boards:  boards,
		items:   items,
		ledger:  ledger,
		tokens:  tokens,
		auth:    NewAuthHandler(users, tokens, ledger),
		board:   NewBoardHandler(boards, users),
		item:    NewItemHandler(items, boards, users),
		importh: NewImportHandler(items, boards, users),
	}
}

// signup creates a user directly against the fakes and returns its id.
func (env *testEnv) signup(t *testing.T, username, email string) primitive.ObjectID {
	t.Helper()
	user := &models.User{Username: username, Email: email, Password: "irrelevant-hash"}
	require.NoError(t, env.users.CreateUser(context.Background(), user))
	return user.ID
}

func (env *testEnv) jsonCtx(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

// asUser stamps access-token claims for the user onto the context, the way
// the JWT middleware would after validating a bearer token.
func asUser(c echo.Context, id primitive.ObjectID) {
	c.Set(middleware.ClaimsKey, &auth.TokenClaims{
		TokenType: models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: id.Hex(),
			ID:      "test-jti-" + id.Hex(),
		},
	})
}

type envelopeBody struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
