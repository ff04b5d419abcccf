package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lesson-tracker/internal/engine"
)

// RegisterValidators 向 gin 的校验器注册自定义规则：
//   - isodate: YYYY-MM-DD 且为真实日期；空串通过，必填由 required 约束
//   - weekday: 0(周日) ~ 6(周六)
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin 校验器不是 validator/v10")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return fmt.Errorf("注册 isodate 失败: %w", err)
	}
	if err := v.RegisterValidation("weekday", validateWeekday); err != nil {
		return fmt.Errorf("注册 weekday 失败: %w", err)
	}
	return nil
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || engine.IsDate(s)
}

func validateWeekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}
