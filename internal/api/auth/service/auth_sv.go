package authService

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"Inkwell/internal/api/auth"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
	jwtPkg "Inkwell/pkg/jwt"
)

const sessionTTL = time.Hour

func (s *authService) RegisterUser(ctx context.Context, req auth.RegisterUserRequest) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	client, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.UserResponse{}, err
	}

	if _, err := client.Users.GetUserByID(ctx, email); err == nil {
		return auth.UserResponse{}, auth.ErrUserAlreadyExists
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return auth.UserResponse{}, err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.UserResponse{}, auth.ErrRegisterUser
	}

	now := time.Now()
	user := entity.User{
		ID:        email,
		Username:  req.Username,
		Password:  hashedPassword,
		Role:      entity.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := client.Users.CreateUser(ctx, user); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to register user")
		return auth.UserResponse{}, auth.ErrRegisterUser
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         user.ID,
	}).Info("User registered")

	return auth.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *authService) LoginUser(ctx context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	client, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	user, err := client.Users.GetUserByID(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// Same answer for a missing account and a wrong password.
			return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
		}
		return auth.LoginUserResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
	}

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session id")
		return auth.LoginUserResponse{}, auth.ErrLoginUser
	}

	if err := s.redisServer.SetSession(ctx, sessionID, user.ID, sessionTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store session")
		return auth.LoginUserResponse{}, auth.ErrLoginUser
	}

	accessToken, expiredAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"sid":      sessionID,
	}, sessionTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.LoginUserResponse{}, auth.ErrLoginUser
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         user.ID,
	}).Info("User logged in")

	return auth.LoginUserResponse{
		AccessToken: accessToken,
		ExpiredAt:   expiredAt,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

func (s *authService) LogoutUser(ctx context.Context, user entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.redisServer.DeleteSession(ctx, user.SessionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to delete session")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         user.ID,
	}).Info("User logged out")

	return nil
}

func (s *authService) GetAllUsers(ctx context.Context) (auth.UserListResponse, error) {
	client, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.UserListResponse{}, err
	}

	users, err := client.Users.GetAllUsers(ctx)
	if err != nil {
		return auth.UserListResponse{}, err
	}

	result := make([]auth.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, auth.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}

	return auth.UserListResponse{Users: result}, nil
}
