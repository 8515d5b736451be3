package service

import (
	"errors"
	"sort"
	"strings"
)

// 业务错误
var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrForbidden 已认证但没有操作权限
	ErrForbidden = errors.New("没有权限执行此操作")
)

// FieldErrors 字段级验证错误，key为字段名
type FieldErrors map[string]string

// Error 实现error接口
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, message := range e {
		parts = append(parts, field+": "+message)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
