package util

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	slugRe  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// Slugify 时把所有非字母数字压成连字符
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// ValidateEmail 验证邮箱格式（宽松匹配，交给邮件服务做最终校验）
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 255 {
		return fmt.Errorf("email too long, max 255 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateSlug 验证 slug（小写字母、数字、连字符）
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is empty")
	}
	if len(slug) > 255 {
		return fmt.Errorf("slug too long, max 255 characters")
	}
	if !slugRe.MatchString(slug) {
		return fmt.Errorf("invalid slug: %s", slug)
	}
	return nil
}

// Slugify 从标题派生 slug，全部非字母数字折叠成单个连字符
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlnumRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 255 {
		s = strings.Trim(s[:255], "-")
	}
	return s
}
