package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// AuthConfig defines how bearer tokens are verified. Tokens are issued by
// an external identity provider and only validated here.
type AuthConfig struct {
	Secret string
	Issuer string
}

// AuthService validates access tokens.
type AuthService struct {
	logger *zap.Logger
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{logger: logger, config: config}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		s.logger.Debug("rejected access token", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.Role == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token has no role")
	}

	return claims, nil
}
