package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	userrepo "github.com/yungbote/careermap-backend/internal/data/repos/user"
	types "github.com/yungbote/careermap-backend/internal/domain/user"
	"github.com/yungbote/careermap-backend/internal/platform/apierr"
	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
	"github.com/yungbote/careermap-backend/internal/platform/dbctx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

const passwordHashCost = 10

var (
	errMissingFields      = apierr.New(http.StatusBadRequest, "missing_fields", errors.New("Missing fields"))
	errUsernameTaken      = apierr.New(http.StatusConflict, "username_taken", errors.New("Username taken"))
	errInvalidCredentials = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("Invalid username or password"))
	errNoStorage          = apierr.New(http.StatusServiceUnavailable, "storage_unavailable", apierr.ErrUnavailable)
)

type JWTClaims struct {
	Username   string `json:"username"`
	University string `json:"university,omitempty"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      *types.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, username, password, university string) (*types.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	// Authenticate verifies a session token without touching storage.
	Authenticate(ctx context.Context, token string) (*ctxutil.SessionData, error)
}

type authService struct {
	log          *logger.Logger
	users        repos.UserRepo
	jwtSecretKey string
	sessionTTL   time.Duration
	now          func() time.Time
}

// NewAuthService builds the credential service. users may be nil when no
// storage is configured; Register and Login then report 503.
func NewAuthService(log *logger.Logger, users repos.UserRepo, jwtSecretKey string, sessionTTL time.Duration) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		users:        users,
		jwtSecretKey: jwtSecretKey,
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

func (as *authService) Register(ctx context.Context, username, password, university string) (*types.User, error) {
	username = strings.TrimSpace(username)
	university = strings.TrimSpace(university)
	if username == "" || password == "" || university == "" {
		return nil, errMissingFields
	}
	if as.users == nil {
		return nil, errNoStorage
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.users.UsernameExists(dbc, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, errUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := as.users.Create(dbc, &types.User{Username: username, HashedPassword: string(hashed), University: university})
	if errors.Is(err, userrepo.ErrUsernameTaken) {
		return nil, errUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	as.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errMissingFields
	}
	if as.users == nil {
		return nil, errNoStorage
	}
	u, err := as.users.GetByUsername(dbctx.Context{Ctx: ctx}, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	token, err := as.generateToken(u)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{Token: token, ExpiresIn: int64(as.sessionTTL.Seconds()), User: u}, nil
}

func (as *authService) Authenticate(ctx context.Context, token string) (*ctxutil.SessionData, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apierr.ErrUnauthorized
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithTimeFunc(as.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", apierr.ErrUnauthorized, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", apierr.ErrUnauthorized)
	}
	return &ctxutil.SessionData{UserID: userID, Username: claims.Username, University: claims.University}, nil
}

func (as *authService) generateToken(u *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		Username:   u.Username,
		University: u.University,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
}
