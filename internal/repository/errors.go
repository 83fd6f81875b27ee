package repository

import "errors"

// 仓储层的类型化失败信号，由 handler 统一映射成 HTTP 状态码
var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrSlugTaken   = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
	ErrForbidden   = errors.New("not the owner of this resource")
)
