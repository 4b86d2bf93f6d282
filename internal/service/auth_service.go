package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"careerboard/internal/model"
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User, p *model.Profile) error
}

type TokenStore interface {
	Store(ctx context.Context, token string, userID string, expiresAt time.Time) error
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type AuthService struct {
	users      UserStore
	tokens     TokenStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(jwtSecret string, accessTTL time.Duration, refreshTTL time.Duration, users UserStore, tokens TokenStore) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	role := strings.ToLower(strings.TrimSpace(req.Role))

	if email == "" || username == "" || password == "" {
		return model.AuthUser{}, model.ErrInvalidInput
	}
	if role == "" {
		role = model.RoleStudent
	}
	if !model.ValidRole(role) {
		return model.AuthUser{}, model.ErrInvalidInput
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.AuthUser{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var profile *model.Profile
	if fullName := strings.TrimSpace(req.FullName); fullName != "" {
		profile = &model.Profile{UserID: user.ID, FullName: fullName, UpdatedAt: now}
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Email: user.Email, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return model.TokenPair{}, err
	}

	ownerID, err := s.tokens.Validate(ctx, refreshToken)
	if err != nil || ownerID != claims.UserID {
		return model.TokenPair{}, model.ErrTokenNotFound
	}

	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.TokenPair{}, model.ErrTokenNotFound
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	_ = s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) ValidateToken(tokenString string, expectedType string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthorized
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthorized
	}

	typ, _ := claimsMap["typ"].(string)
	if expectedType != "" && typ != expectedType {
		return nil, model.ErrUnauthorized
	}

	claims := &model.AuthClaims{Type: typ}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" {
		return nil, model.ErrUnauthorized
	}

	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{ID: user.ID, Email: user.Email, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := s.signToken(jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"typ":      "access",
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshExpiry := now.Add(s.refreshTTL)
	refreshToken, err := s.signToken(jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"typ":      "refresh",
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      refreshExpiry.Unix(),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.tokens.Store(ctx, refreshToken, user.ID, refreshExpiry); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         model.AuthUser{ID: user.ID, Email: user.Email, Username: user.Username, Role: user.Role},
	}, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
