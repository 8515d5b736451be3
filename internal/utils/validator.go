package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// InitValidator 初始化验证器
func InitValidator() {
	validate = validator.New()

	// 注册自定义验证函数
	validate.RegisterValidation("username", validateUsername)
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// validateUsername 验证用户名（ASCII字母数字下划线，长度3-40）
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 40 {
		return false
	}
	return usernamePattern.MatchString(username)
}

// RegisterCustomValidations 把自定义验证注册到外部验证器实例
// gin 的绑定验证器是独立实例，路由初始化时需要调用一次
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("username", validateUsername)
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	v := GetValidator()
	if err := v.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError 格式化验证错误
func formatValidationError(err error) error {
	var errors []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			var message string
			switch tag {
			case "required":
				message = fmt.Sprintf("%s是必填字段", field)
			case "min":
				message = fmt.Sprintf("%s长度不能小于%s", field, param)
			case "max":
				message = fmt.Sprintf("%s长度不能大于%s", field, param)
			case "email":
				message = fmt.Sprintf("%s必须是有效的邮箱地址", field)
			case "username":
				message = fmt.Sprintf("%s只能包含字母、数字和下划线，长度3-40", field)
			default:
				message = fmt.Sprintf("%s验证失败: %s", field, tag)
			}

			errors = append(errors, message)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf(strings.Join(errors, "; "))
	}

	return err
}

// BindingErrorFields 把绑定错误转换为字段级错误映射
func BindingErrorFields(err error) map[string]string {
	fields := map[string]string{}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["detail"] = err.Error()
		return fields
	}

	for _, e := range validationErrors {
		name := toSnakeCase(e.Field())
		switch e.Tag() {
		case "required":
			fields[name] = "该字段是必填项"
		case "min":
			fields[name] = fmt.Sprintf("长度不能小于%s", e.Param())
		case "max":
			fields[name] = fmt.Sprintf("长度不能大于%s", e.Param())
		case "email":
			fields[name] = "必须是有效的邮箱地址"
		case "username":
			fields[name] = "只能包含字母、数字和下划线，长度3-40"
		case "eqfield":
			fields[name] = "两次输入的密码不一致"
		default:
			fields[name] = fmt.Sprintf("验证失败: %s", e.Tag())
		}
	}

	return fields
}

// toSnakeCase 结构体字段名转JSON风格的蛇形命名
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
