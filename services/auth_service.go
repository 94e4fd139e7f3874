package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-ops/clock"
	"hotel-ops/models"
	"hotel-ops/utils"
)

type AuthService struct {
	DB       *gorm.DB
	Sessions SessionStore
	Tokens   *utils.TokenIssuer
	Roles    *RoleService
	Clock    clock.Clock
	TTL      time.Duration
	Log      *zap.Logger
}

func NewAuthService(db *gorm.DB, sessions SessionStore, tokens *utils.TokenIssuer, roles *RoleService, clk clock.Clock, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{DB: db, Sessions: sessions, Tokens: tokens, Roles: roles, Clock: clk, TTL: ttl, Log: log}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Identity  `json:"user"`
}

func checkPassword(hash, password string) error {
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login authenticates a staff member.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}
	if err := checkPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, err
	}
	if user.Status == models.UserInactive {
		return LoginResult{}, fmt.Errorf("%w: account is inactive", ErrForbidden)
	}

	if err := s.DB.WithContext(ctx).Model(&user).Update("last_active", s.Clock.Now()).Error; err != nil {
		s.Log.Warn("could not record last activity", zap.String("user", user.ID), zap.Error(err))
	}

	return s.startSession(ctx, models.SubjectStaff, user.ID, user.Role)
}

// OwnerLogin authenticates a property owner for the owner portal.
func (s *AuthService) OwnerLogin(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	var owner models.Owner
	if err := s.DB.WithContext(ctx).Where("LOWER(email) = ?", email).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("load owner: %w", err)
	}
	if owner.PasswordHash == nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := checkPassword(*owner.PasswordHash, password); err != nil {
		return LoginResult{}, err
	}

	return s.startSession(ctx, models.SubjectOwner, owner.ID, models.RoleOwner)
}

func (s *AuthService) startSession(ctx context.Context, kind, subjectID, role string) (LoginResult, error) {
	now := s.Clock.Now()
	sess := SessionData{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		SubjectKind: kind,
		Role:        role,
		ExpiresAt:   now.Add(s.TTL),
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	token, err := s.Tokens.Issue(sess.ID, subjectID, kind, now, sess.ExpiresAt)
	if err != nil {
		return LoginResult{}, err
	}

	ident, err := s.identityFor(ctx, sess)
	if err != nil {
		return LoginResult{}, err
	}

	s.Log.Info("session started", zap.String("kind", kind), zap.String("subject", subjectID))
	return LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, User: ident}, nil
}

// Authenticate resolves a bearer token into the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return Identity{}, ErrSessionExpired
	}
	sess, err := s.Sessions.Lookup(ctx, claims.SessionID)
	if err != nil {
		return Identity{}, err
	}
	if sess.SubjectID != claims.Subject {
		return Identity{}, ErrSessionExpired
	}
	return s.identityFor(ctx, sess)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.Sessions.Delete(ctx, claims.SessionID)
}

// subjectGone ends the session only when its subject no longer exists.
func subjectGone(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSessionExpired
	}
	return fmt.Errorf("load session %s: %w", what, err)
}

func (s *AuthService) identityFor(ctx context.Context, sess SessionData) (Identity, error) {
	ident := Identity{
		SessionID: sess.ID,
		SubjectID: sess.SubjectID,
		Kind:      sess.SubjectKind,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt,
	}

	switch sess.SubjectKind {
	case models.SubjectOwner:
		var owner models.Owner
		if err := s.DB.WithContext(ctx).First(&owner, "id = ?", sess.SubjectID).Error; err != nil {
			return Identity{}, subjectGone(err, "owner")
		}
		ident.Name, ident.Email = owner.Name, owner.Email
	default:
		var user models.User
		if err := s.DB.WithContext(ctx).First(&user, "id = ?", sess.SubjectID).Error; err != nil {
			return Identity{}, subjectGone(err, "user")
		}
		if user.Status == models.UserInactive {
			return Identity{}, ErrSessionExpired
		}
		ident.Name, ident.Email, ident.Role = user.Name, user.Email, user.Role
	}

	perms, err := s.Roles.PermissionsFor(ctx, ident.Role)
	if err != nil {
		return Identity{}, err
	}
	ident.Permissions = perms
	return ident, nil
}
