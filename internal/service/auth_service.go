package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// AuthService issues access tokens for directory users.
type AuthService struct {
	directory *DirectoryService
	tokenMgr  *auth.TokenManager
	logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(directory *DirectoryService, tokenMgr *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		directory: directory,
		tokenMgr:  tokenMgr,
		logger:    orLogger(logger, "auth.service"),
	}
}

// Login looks the user up by email and signs a token for them.
func (s *AuthService) Login(ctx context.Context, email string) (*domain.User, string, time.Time, error) {
	user, err := s.directory.Login(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, token, exp, nil
}
