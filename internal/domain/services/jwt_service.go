package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
	"github.com/malamapl09/donaciones-pola-allande/pkg/utils"
)

const tokenIssuer = "donaciones-pola-allande"

// InterfaceJWTService defines admin authentication
type InterfaceJWTService interface {
	GenerateToken(admin *models.AdminUser) (string, time.Time, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

// LoginInput accepts a username or an email as identifier
type LoginInput struct {
	Identifier string
	Password   string
	IP         string
}

// LoginUser is the admin profile returned on login
type LoginUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResult is a successful login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      LoginUser `json:"user"`
}

// JWTClaims are the claims of an admin session token
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies admin tokens
type JWTService struct {
	secretKey []byte
	issuer    string
	expiry    time.Duration
	DB        *gorm.DB
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: []byte(cfg.JWTSecretKey),
		issuer:    tokenIssuer,
		expiry:    cfg.JWTExpiry,
		DB:        db,
	}
}

// 1 GenerateToken signs an HS256 token for admin
func (s *JWTService) GenerateToken(admin *models.AdminUser) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := &JWTClaims{
		UserID:   admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// 2 ValidateToken verifies signature, expiry and issuer
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, code.Wrap(code.ErrTokenInvalid, err)
	}
	if !token.Valid || !claims.VerifyIssuer(s.issuer, true) || claims.UserID == 0 {
		return nil, code.New(code.ErrTokenInvalid)
	}
	return claims, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// equalizeTiming spends one bcrypt comparison when no account matched, so
// unknown identifiers take as long as wrong passwords.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("not-a-real-password")
	})
	_ = utils.VerifyPassword(dummyHash, password)
}

// 3 Login checks credentials and issues a session token. Unknown users,
// inactive users and wrong passwords all fail with the same error.
func (s *JWTService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, code.New(code.ErrAdminCredentialsRequired)
	}

	db := s.DB.WithContext(ctx)

	var admin models.AdminUser
	err := db.Where("username = ? OR LOWER(email) = ?", identifier, strings.ToLower(identifier)).First(&admin).Error
	if database.IsNotFound(err) {
		equalizeTiming(input.Password)
		return nil, code.New(code.ErrAdminCredentials)
	}
	if err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	if err := utils.VerifyPassword(admin.PasswordHash, input.Password); err != nil || !admin.IsActive {
		fields := []zap.Field{zap.Uint("admin_id", admin.ID), zap.String("ip", input.IP)}
		if err != nil && !errors.Is(err, utils.ErrPasswordMismatch) {
			fields = append(fields, zap.Error(err))
		}
		logger.L().Warn("admin login rejected", fields...)
		return nil, code.New(code.ErrAdminCredentials)
	}

	token, expiresAt, err := s.GenerateToken(&admin)
	if err != nil {
		return nil, code.Wrap(code.ErrUnknown, err)
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&admin).Update("last_login", now).Error; err != nil {
			return err
		}
		actor := Actor{AdminID: &admin.ID, Username: admin.Username, IP: input.IP}
		return writeAudit(tx, models.AuditAdminLogin, actor, uintString(admin.ID), "")
	})
	if err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	logger.L().Info("admin login", zap.Uint("admin_id", admin.ID), zap.String("username", admin.Username))

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: LoginUser{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
		},
	}, nil
}
