package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"DayFlow/config"
	"DayFlow/internal/model"
	"DayFlow/internal/model/dto"
	pkgerrors "DayFlow/pkg/errors"
	"DayFlow/pkg/logger"
	"DayFlow/pkg/snowflake"
	"DayFlow/pkg/token"
	"DayFlow/storage/database"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

type AuthService struct{}

// Register 注册新用户
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB().WithContext(ctx)

	// 先查后插，唯一索引兜底并发
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, pkgerrors.UsernameTaken
	}
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, pkgerrors.EmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.Cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = config.Cfg.DefaultTimezone
	}

	user := &model.User{
		PublicID:     publicID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Timezone:     timezone,
	}

	if err := db.Create(user).Error; err != nil {
		// 并发注册撞唯一索引
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil, pkgerrors.UsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("User registered",
		zap.Int64("public_id", publicID),
		zap.String("username", username))

	return s.buildAuthResponse(user)
}

// Login 用户名密码登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user model.User
	err := database.DB().WithContext(ctx).
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不区分用户不存在和密码错误
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return nil, pkgerrors.InvalidCredentials
	}

	return s.buildAuthResponse(&user)
}

// Refresh 用 refresh token 换新 token 对
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	userID, err := token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	// 确认用户仍然存在
	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}
	var user model.User
	if err := database.DB().WithContext(ctx).Where("public_id = ?", publicID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Unauthorized
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	access, refresh, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}

func (s *AuthService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	uid := strconv.FormatInt(user.PublicID, 10)
	access, refresh, expiresIn, err := token.GenerateTokenPair(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User: dto.AuthUserSnapshot{
			ID:       uid,
			Username: user.Username,
			Email:    user.Email,
			Timezone: user.Timezone,
		},
	}, nil
}

// resolveUser 把 middleware 给的 public_id 字符串解析成用户记录
// 各业务 service 共用
func resolveUser(ctx context.Context, userID string) (*model.User, error) {
	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.InvalidUserID
	}

	var user model.User
	if err := database.DB().WithContext(ctx).Where("public_id = ?", publicID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.UserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// userLocation 用户时区，解析失败退回服务默认时区
func userLocation(user *model.User) *time.Location {
	if user.Timezone != "" && user.Timezone != "Local" {
		if loc, err := time.LoadLocation(user.Timezone); err == nil {
			return loc
		}
		logger.Logger.Warn("Invalid user timezone, falling back to default",
			zap.Int64("user_id", user.PublicID),
			zap.String("timezone", user.Timezone))
	}
	return config.Cfg.Location()
}
