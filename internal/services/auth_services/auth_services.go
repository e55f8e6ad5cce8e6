package auth_services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/model/auth_model"
	"taskflow/internal/repository/auth_repository"
)

var (
	ErrEmailAndPasswordRequired = errors.New("email and password are required")
	ErrEmailTaken               = errors.New("user already exists")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInvalidToken             = errors.New("invalid or expired token")
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	Users  *auth_repository.UserRepo
	secret []byte
}

func NewAuthService(users *auth_repository.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, secret: []byte(secret)}
}

// Register creates the user with a bcrypt password hash and a generated
// identicon avatar, then issues a token for the new account.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, *auth_model.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", nil, ErrEmailAndPasswordRequired
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, auth_repository.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &auth_model.User{
		Email:    email,
		Password: string(hash),
		Avatar:   "https://api.dicebear.com/7.x/identicon/svg?seed=" + url.QueryEscape(email),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, auth_repository.ErrEmailTaken) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Login verifies the credentials without revealing whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *auth_model.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) issueToken(u *auth_model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies the token signature and expiry and recovers the
// user id it was issued for.
func (s *AuthService) ParseAccessToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
