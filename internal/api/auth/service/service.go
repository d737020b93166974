package authService

import (
	"context"

	"github.com/sirupsen/logrus"

	"Inkwell/internal/api/auth"
	authRepository "Inkwell/internal/api/auth/repository"
	"Inkwell/internal/entity"
	"Inkwell/pkg/bcrypt"
	"Inkwell/pkg/redis"
	"Inkwell/pkg/utils"
)

type IAuthService interface {
	RegisterUser(ctx context.Context, req auth.RegisterUserRequest) (auth.UserResponse, error)
	LoginUser(ctx context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	LogoutUser(ctx context.Context, user entity.UserLoginData) error
	GetAllUsers(ctx context.Context) (auth.UserListResponse, error)
}

type authService struct {
	log         *logrus.Logger
	authRepo    authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	redisServer redis.IRedis
	utils       utils.IUtils
}

func New(authRepo authRepository.Repository, log *logrus.Logger, bcryptUtils bcrypt.IBcrypt, redisServer redis.IRedis, utils utils.IUtils) IAuthService {
	return &authService{
		log:         log,
		authRepo:    authRepo,
		bcryptUtils: bcryptUtils,
		redisServer: redisServer,
		utils:       utils,
	}
}
