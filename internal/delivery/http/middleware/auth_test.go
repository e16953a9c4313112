package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/handler"
	"casepanel/internal/delivery/http/session"
	"casepanel/internal/domain/user"
)

// Session verification is stateless, so the service needs no repository here.
func newSessionOnlyService(codec *auth.TokenCodec) auth.Service {
	return auth.NewService(nil, codec, 24*time.Hour, bcrypt.MinCost)
}

func TestAuth_NoToken(t *testing.T) {
	t.Parallel()

	codec := auth.NewTokenCodec([]byte("secret"))
	gw := session.NewGateway(false)
	protected := Auth(newSessionOnlyService(codec), gw)(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	protected(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InjectsClaims(t *testing.T) {
	t.Parallel()

	codec := auth.NewTokenCodec([]byte("secret"))
	gw := session.NewGateway(false)

	var got *auth.Claims
	protected := Auth(newSessionOnlyService(codec), gw)(func(w http.ResponseWriter, r *http.Request) {
		got = handler.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, _, err := codec.Encode(&user.User{ID: "u7", Username: "marco", Role: user.RoleUser}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	protected(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u7", got.UserID)
	assert.Equal(t, "marco", got.Username)
}

func TestAuth_BearerFallback(t *testing.T) {
	t.Parallel()

	codec := auth.NewTokenCodec([]byte("secret"))
	gw := session.NewGateway(false)
	protected := Auth(newSessionOnlyService(codec), gw)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token, _, err := codec.Encode(&user.User{ID: "u8", Username: "api-client", Role: user.RoleUser}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	codec := auth.NewTokenCodec([]byte("secret"))
	gw := session.NewGateway(false)
	svc := newSessionOnlyService(codec)

	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return Auth(svc, gw)(RequireRole(user.RoleAdmin)(next))
	}
	endpoint := adminOnly(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	do := func(role user.Role) int {
		token, _, err := codec.Encode(&user.User{ID: "u9", Username: "x", Role: role}, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		rec := httptest.NewRecorder()
		endpoint(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do(user.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, do(user.RoleUser))
}
