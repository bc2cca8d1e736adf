package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/normalization"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/types"
	"github.com/notehive/notehive-backend/internal/utils"
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// RoleFor authenticates email+password against the bootstrap
	// identities first, then the user store. The error is always the
	// same Unauthorized regardless of which check failed.
	RoleFor(ctx context.Context, email, password string) (types.Role, error)
	IssueToken(email string, role types.Role) (string, error)
	VerifyToken(tokenString string) (string, types.Role, error)
	Register(ctx context.Context, name, email, password string, role types.Role) (*types.User, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	bootstrap     []config.BootstrapIdentity
	jwtSecretKey  string
	accessTTL     time.Duration
	hashPasswords bool
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	bootstrap []config.BootstrapIdentity,
	jwtSecretKey string,
	accessTTL time.Duration,
	hashPasswords bool,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		bootstrap:     bootstrap,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		hashPasswords: hashPasswords,
	}
}

func (as *authService) RoleFor(ctx context.Context, email, password string) (types.Role, error) {
	email = normalization.ParseInputString(email)
	if email == "" || password == "" {
		return "", apierr.Unauthorized("invalid credentials")
	}

	// bootstrap identities are configuration, compared plaintext
	for _, id := range as.bootstrap {
		if strings.EqualFold(id.Email, email) && id.Password == password {
			return id.Role, nil
		}
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		as.log.Error("RoleFor: user lookup failed", "error", err)
		return "", err
	}
	if len(users) == 0 || users[0] == nil {
		return "", apierr.Unauthorized("invalid credentials")
	}
	user := users[0]
	if !utils.PasswordMatches(user.Password, password, as.hashPasswords) {
		return "", apierr.Unauthorized("invalid credentials")
	}
	return user.Role, nil
}

func (as *authService) IssueToken(email string, role types.Role) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) VerifyToken(tokenString string) (string, types.Role, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", apierr.Unauthorized("invalid or expired token")
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return "", "", apierr.Unauthorized("invalid or expired token")
	}
	role := types.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return "", "", apierr.Unauthorized("invalid or expired token")
	}
	return claims.Subject, role, nil
}

func (as *authService) Register(ctx context.Context, name, email, password string, role types.Role) (*types.User, error) {
	user := &types.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}
	utils.NormalizeUserFields(user)
	if err := utils.ValidateRegistration(ctx, as.userRepo, user); err != nil {
		return nil, err
	}
	if as.hashPasswords {
		if err := utils.HashPassword(user); err != nil {
			as.log.Error("Register: password hashing failed", "error", err)
			return nil, err
		}
	}
	user.ID = uuid.New()
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		as.log.Error("Register: create user failed", "error", err)
		return nil, err
	}
	return user, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
