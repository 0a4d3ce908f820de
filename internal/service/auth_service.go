package service

import (
	"Kudos/internal/api/config"
	"Kudos/internal/api/dto"
	"Kudos/internal/model"
	"Kudos/internal/pkg/consts"
	"Kudos/internal/pkg/security"
	"Kudos/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/redis/go-redis/v9"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginDTO) (string, *dto.UserDTO, error)
	Logout(ctx context.Context, token string) error
}

type AuthServiceImpl struct {
	userRepo repository.UserRepo
	rdb      *redis.Client
	policy   config.PolicyConfig
}

func NewAuthService(userRepo repository.UserRepo, rdb *redis.Client, policy config.PolicyConfig) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		rdb:      rdb,
		policy:   policy,
	}
}

// Login OAuth 流程在网关侧完成，这里拿到的是已验证的提供方资料：
// 校验邮箱域策略，首次登录落库（再次登录刷新资料），签发 JWT
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (string, *dto.UserDTO, error) {
	if req.Email == "" {
		return "", nil, ErrEmailRequired
	}
	if s.policy.AllowedEmailDomain != "" {
		suffix := "@" + strings.ToLower(s.policy.AllowedEmailDomain)
		if !strings.HasSuffix(strings.ToLower(req.Email), suffix) {
			return "", nil, ErrEmailDomain
		}
	}

	user := &model.User{
		ID:        req.Subject,
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	}
	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return "", nil, err
	}
	// username 是派生字段，不在实体上
	userDTO.Username = user.Username()
	return token, userDTO, nil
}

// Logout 把 token 签名写入吊销名单，过期时间与 token 有效期一致
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return s.rdb.Set(ctx, consts.TokenRevokedKey+signature, "1", security.Expiration()).Err()
}
