package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"annapurna/internal/domain"
	"annapurna/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds      = errors.New("invalid email or password")
	ErrDuplicateUser = errors.New("user already exists")
	ErrVendorExists  = errors.New("vendor account already exists")
	ErrUserNotFound  = errors.New("user not found")
)

const (
	bcryptCost    = 12
	tokenTTL      = 7 * 24 * time.Hour
	resetTokenTTL = time.Hour
)

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret)}
}

type SignupInput struct {
	EmployeeID  string
	FullName    string
	Email       string
	Password    string
	AccountType string
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// OneTimeToken returns 256 bits of randomness as hex, used for email
// verification and password resets.
func OneTimeToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Signup creates a user and returns it with its verification token. A second
// vendor signup fails on the store's single-vendor unique index, so the check
// cannot race with a concurrent insert.
func (s *AuthService) Signup(in SignupInput) (*domain.User, error) {
	exists, err := s.Users.ExistsByEmployeeOrEmail(in.EmployeeID, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	verify, err := OneTimeToken()
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:                uuid.NewString(),
		EmployeeID:        in.EmployeeID,
		FullName:          in.FullName,
		Email:             in.Email,
		Hash:              hash,
		AccountType:       in.AccountType,
		VerificationToken: verify,
	}
	if err := s.Users.Create(u); err != nil {
		if repos.IsVendorConflict(err) {
			return nil, ErrVendorExists
		}
		if repos.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if !CheckPassword(u.Hash, password) {
		return nil, "", ErrBadCreds
	}
	token, err := s.IssueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// ResolveToken fails closed: expired, forged, or malformed tokens all yield "".
func (s *AuthService) ResolveToken(token string) string {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return ""
	}
	return claims.UserID
}

// CurrentUser resolves a bearer token to its user. Invalid tokens and unknown
// users return (nil, nil); only store failures surface as errors.
func (s *AuthService) CurrentUser(token string) (*domain.User, error) {
	userID := s.ResolveToken(token)
	if userID == "" {
		return nil, nil
	}
	u, err := s.Users.ByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// ForgotPassword stores a one-hour reset token on the user record and returns
// it. Delivery is the mailer's problem; here it is only logged by the caller.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	token, err := OneTimeToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(resetTokenTTL).UTC().Format(time.RFC3339)
	if err := s.Users.SetResetToken(u.ID, token, expires); err != nil {
		return "", err
	}
	return token, nil
}
