package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrRatingValueInvalid = errors.New("评分必须是 1 到 5 的整数")
	ErrRateeRequired      = errors.New("缺少被评分用户")
	ErrSelfRating         = errors.New("不能给自己评分")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrRatingNotFound     = errors.New("评分记录不存在")
	ErrNotRatingOwner     = errors.New("只能删除自己的评分")
	ErrEmailDomain        = errors.New("该邮箱域不允许登录")
	ErrEmailRequired      = errors.New("登录账号缺少邮箱")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrRatingValueInvalid: BadRequest,
	ErrRateeRequired:      BadRequest,
	ErrSelfRating:         BadRequest,
	ErrUserNotFound:       NotFound,
	ErrRatingNotFound:     NotFound,
	ErrNotRatingOwner:     Forbidden,
	ErrEmailDomain:        Unauthorized,
	ErrEmailRequired:      Unauthorized,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}
