package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
	"github.com/yungbote/careermap-backend/internal/services"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uuid.UUID, expires time.Time) string {
	t.Helper()
	claims := services.JWTClaims{
		Username:   "ada",
		University: "UC Berkeley",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func sessionEcho(c *gin.Context) {
	sd := ctxutil.GetSessionData(c.Request.Context())
	if sd == nil {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, sd.UserID.String()+"|"+sd.University)
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	am := NewAuthMiddleware(log, services.NewAuthService(log, nil, testSecret, time.Hour))

	r := gin.New()
	r.Use(am.OptionalAuth())
	r.GET("/whoami", sessionEcho)

	userID := uuid.New()
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"no token", "", "anonymous"},
		{"valid bearer", "Bearer " + signToken(t, testSecret, userID, time.Now().Add(time.Hour)), userID.String() + "|UC Berkeley"},
		{"lowercase scheme", "bearer " + signToken(t, testSecret, userID, time.Now().Add(time.Hour)), userID.String() + "|UC Berkeley"},
		{"expired", "Bearer " + signToken(t, testSecret, userID, time.Now().Add(-time.Minute)), "anonymous"},
		{"wrong secret", "Bearer " + signToken(t, "other", userID, time.Now().Add(time.Hour)), "anonymous"},
		{"garbage", "Bearer not-a-token", "anonymous"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", tc.name, rec.Code)
		}
		if got := rec.Body.String(); got != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.name, got, tc.want)
		}
	}
}

func TestOptionalAuthReadsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	am := NewAuthMiddleware(log, services.NewAuthService(log, nil, testSecret, time.Hour))

	r := gin.New()
	r.Use(am.OptionalAuth())
	r.GET("/whoami", sessionEcho)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: signToken(t, testSecret, userID, time.Now().Add(time.Hour))})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, userID.String()+"|UC Berkeley", rec.Body.String())
}
