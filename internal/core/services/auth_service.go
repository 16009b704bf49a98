package services

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

const sessionKeyPrefix = "session:"

// AuthService establishes who is calling and with what authority. A role is
// only trusted once the approval gate has been passed at sign-in; the resolved
// role is stamped into the session token and the session is kept live in the
// cache so sign-out can invalidate it before expiry.
type AuthService struct {
	userRepo   ports.UserRepository
	sessions   ports.SessionCache
	privateKey *rsa.PrivateKey
	tokenTTL   time.Duration
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	userRepo ports.UserRepository,
	sessions ports.SessionCache,
	privateKey *rsa.PrivateKey,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		privateKey: privateKey,
		tokenTTL:   tokenTTL,
	}
}

// SignUp creates the account, profile and role assignment in one repository
// transaction. Students are approved immediately and receive a live session;
// admins start pending and get no session until a primary admin approves them.
func (s *AuthService) SignUp(ctx context.Context, email, password, username string, requestedRole domain.Role) (*ports.SignUpResult, error) {
	if requestedRole != domain.RoleStudent && requestedRole != domain.RoleAdmin {
		return nil, domain.ErrUnsupportedRole
	}
	if len(password) < 6 {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	approval := domain.ApprovalApproved
	if requestedRole == domain.RoleAdmin {
		approval = domain.ApprovalPending
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	profile := domain.Profile{UserID: user.ID, Username: username}
	role := domain.RoleAssignment{
		UserID:         user.ID,
		Role:           requestedRole,
		ApprovalStatus: approval,
	}

	if err := s.userRepo.CreateUser(ctx, user, profile, role); err != nil {
		return nil, err
	}

	result := &ports.SignUpResult{UserID: user.ID, Role: requestedRole}

	if requestedRole == domain.RoleAdmin {
		// Admins may not use the application until approved: no session.
		result.PendingApproval = true
		return result, nil
	}

	token, err := s.openSession(ctx, user, requestedRole, username)
	if err != nil {
		return nil, err
	}
	result.Token = token
	return result, nil
}

// SignIn runs in two phases: credential verification first, then role and
// profile hydration. Only after both succeed is a session opened, so a caller
// never holds a token for a role that has not passed the approval gate.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role, username, err := s.hydrateRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.openSession(ctx, *user, role, username)
	if err != nil {
		return nil, err
	}

	return &ports.SignInResult{Token: token, Role: role, Username: username}, nil
}

// authenticate verifies credentials only; it says nothing about roles.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// hydrateRole loads the role assignment and profile for an authenticated
// identity and enforces the approval gate. Missing role rows and unapproved
// non-student roles both leave the caller unauthenticated.
func (s *AuthService) hydrateRole(ctx context.Context, userID string) (domain.Role, string, error) {
	role, err := s.userRepo.FindRole(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if role == nil {
		return "", "", domain.ErrNoRoleAssigned
	}
	if role.Role != domain.RoleStudent && role.ApprovalStatus != domain.ApprovalApproved {
		return "", "", domain.ErrApprovalPending
	}

	username := ""
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if profile != nil {
		username = profile.Username
	}
	return role.Role, username, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Del(ctx, sessionKeyPrefix+hashToken(token)).Err()
}

// CurrentSession validates the token signature and checks the session is
// still live in the cache, so signed-out tokens are rejected before expiry.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrSessionExpired
	}

	n, err := s.sessions.Exists(ctx, sessionKeyPrefix+hashToken(token)).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrSessionExpired
	}

	return &domain.Session{
		UserID:   claims["sub"].(string),
		Email:    stringClaim(claims, "email"),
		Role:     domain.Role(stringClaim(claims, "role")),
		Username: stringClaim(claims, "username"),
	}, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) openSession(ctx context.Context, user domain.User, role domain.Role, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"role":     string(role),
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Set(ctx, sessionKeyPrefix+hashToken(token), user.ID, s.tokenTTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if _, ok := claims["sub"].(string); !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
