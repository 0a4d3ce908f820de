package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验结构体上的 validate 标签。
// 错误原样返回，由 response.Error 统一映射成业务码
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
