package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_WriteAttributes(t *testing.T) {
	t.Parallel()

	gw := NewGateway(true)
	rec := httptest.NewRecorder()
	expiresAt := time.Now().Add(24 * time.Hour)

	gw.Write(rec, "signed-token", expiresAt)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "signed-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.WithinDuration(t, expiresAt, c.Expires, time.Second)
}

func TestGateway_SecureOffInDevelopment(t *testing.T) {
	t.Parallel()

	gw := NewGateway(false)
	rec := httptest.NewRecorder()
	gw.Write(rec, "tok", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.False(t, cookies[0].Secure)
}

func TestGateway_ReadRoundTrip(t *testing.T) {
	t.Parallel()

	gw := NewGateway(false)
	rec := httptest.NewRecorder()
	gw.Write(rec, "round-trip-token", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	assert.Equal(t, "round-trip-token", gw.Read(req))
}

func TestGateway_ReadAbsent(t *testing.T) {
	t.Parallel()

	gw := NewGateway(false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", gw.Read(req))
}

func TestGateway_Clear(t *testing.T) {
	t.Parallel()

	gw := NewGateway(false)
	rec := httptest.NewRecorder()

	// Clearing twice must behave the same as clearing once
	gw.Clear(rec)
	gw.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Equal(t, CookieName, c.Name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
		assert.True(t, c.Expires.Before(time.Now()))
	}
}
