package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"
	"qtholidays-service/pkg/cache"
	"qtholidays-service/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type sessionContextKey struct{}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService issues, checks and revokes staff sessions
type AuthService struct {
	staffRepo repository.StaffRepository
	secret    []byte
	ttl       time.Duration
	revoked   *cache.TTLCache[string, struct{}]
	clock     Clock
	logger    logger.Logger
}

// NewAuthService creates a new auth service signing tokens with secret
func NewAuthService(
	staffRepo repository.StaffRepository,
	secret string,
	ttl time.Duration,
	clock Clock,
	logger logger.Logger,
) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		secret:    []byte(secret),
		ttl:       ttl,
		revoked:   cache.NewTTLCacheWithClock[string, struct{}](clock.Now),
		clock:     clock,
		logger:    logger,
	}
}

// Login checks the credentials and opens a session. Unknown email, wrong
// password and inactive accounts all fail with ErrAuth.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", entity.ErrAuth)
	}

	user, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			s.logger.Warn("Login for unknown staff user", "email", email)
			return nil, fmt.Errorf("%w: invalid credentials", entity.ErrAuth)
		}
		return nil, fmt.Errorf("failed to load staff user: %w: %w", entity.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login with wrong password", "email", email)
		return nil, fmt.Errorf("%w: invalid credentials", entity.ErrAuth)
	}
	if !user.Active {
		s.logger.Warn("Login for inactive staff user", "email", email)
		return nil, fmt.Errorf("%w: account disabled", entity.ErrAuth)
	}

	now := s.clock.Now()
	claims := sessionClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	session := sessionFromClaims(claims, user.ID)
	session.Token = token

	s.logger.Info("Staff user logged in", "email", user.Email, "session", session.ID)
	return session, nil
}

// Authenticate parses a bearer token and returns its session unless it is
// invalid, expired or logged out
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrAuth, err)
	}

	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, fmt.Errorf("%w: session ended", entity.ErrAuth)
	}

	staffID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", entity.ErrAuth)
	}

	session := sessionFromClaims(claims, uint(staffID))
	session.Token = token
	return session, nil
}

// Logout revokes the session until its token would have expired anyway
func (s *AuthService) Logout(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return fmt.Errorf("%w: no session", entity.ErrAuth)
	}

	ttl := session.ExpiresAt.Sub(s.clock.Now())
	if ttl > 0 {
		s.revoked.Set(session.ID, struct{}{}, ttl)
	}
	s.revoked.Purge()

	s.logger.Info("Staff user logged out", "email", session.Email, "session", session.ID)
	return nil
}

// RegisterStaff creates an active staff account with a bcrypt password hash
func (s *AuthService) RegisterStaff(ctx context.Context, email, name, password string) (*entity.StaffUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email and a password of at least 8 characters are required", entity.ErrInvalidRecord)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.StaffUser{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.staffRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Staff user registered", "email", email, "id", user.ID)
	return user, nil
}

// WithSession attaches session to ctx
func WithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// CurrentSession returns the session attached to ctx, or ErrAuth when none is
func CurrentSession(ctx context.Context) (*entity.Session, error) {
	session, ok := ctx.Value(sessionContextKey{}).(*entity.Session)
	if !ok || session == nil {
		return nil, fmt.Errorf("%w: not signed in", entity.ErrAuth)
	}
	return session, nil
}

func sessionFromClaims(claims sessionClaims, staffID uint) *entity.Session {
	session := &entity.Session{
		ID:      claims.ID,
		StaffID: staffID,
		Email:   claims.Email,
		Name:    claims.Name,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}
