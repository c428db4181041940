package user

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/middleware"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt工作因子, 兼顾安全与耗时
const bcryptCost = 12

// ErrEmailTaken 邮箱已被注册
var ErrEmailTaken = errors.New("该邮箱已被注册")

// ErrBadCredentials 邮箱或密码错误, 不区分具体原因避免探测
var ErrBadCredentials = errors.New("邮箱或密码错误")

// AuthService 注册登录相关的业务逻辑
type AuthService interface {
	Register(req *dto.RegisterRequest) (*db.User, string, error)
	Login(req *dto.LoginRequest) (*db.User, string, error)
	Profile(userId uint) (*db.User, error)
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) Register(req *dto.RegisterRequest) (*db.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := dao.App.UserDb.EmailExists(email)
	if err != nil {
		return nil, "", fmt.Errorf("查询用户失败[e1r5y]: %w", err)
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("密码加密失败[o3p7l]: %w", err)
	}

	user := &db.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Role:     enum.RoleUser,
	}

	id, err := dao.App.UserDb.Create(user)
	if err != nil {
		return nil, "", err
	}
	user.Id = id

	token, err := middleware.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("签发令牌失败[s9d2f]: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*db.User, string, error) {
	var user db.User
	if err := dao.App.UserDb.GetByEmail(&user, req.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", fmt.Errorf("查询用户失败[j4g8m]: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		return nil, "", fmt.Errorf("签发令牌失败[n4t8c]: %w", err)
	}
	return &user, token, nil
}

func (s *authService) Profile(userId uint) (*db.User, error) {
	var user db.User
	if err := dao.App.UserDb.GetById(&user, userId); err != nil {
		return nil, err
	}
	return &user, nil
}
