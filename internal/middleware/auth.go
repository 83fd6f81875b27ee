package middleware

import (
	"errors"
	"net/http"
	"strings"

	"blog-service/internal/models"
	"blog-service/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserKey 是解析成功后放入 gin context 的键
const CurrentUserKey = "currentUser"

// AuthMiddleware 校验 JWT，并在 context 里放入当前用户。
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) URL 查询参数 ?token=xxx（用于导出下载等无法自定义 Header 的场景）
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) Cookie access_token（浏览器端登录后走 cookie）
		if tokenStr == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.ErrorAbort(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
			return
		}

		subject, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			msg := "无效的登录凭证"
			if errors.Is(err, util.ErrTokenExpired) {
				msg = "登录已失效，请重新登录"
			}
			util.ErrorAbort(c, http.StatusUnauthorized, util.CodeAuth, msg)
			return
		}

		var user models.User
		if err := db.Where("LOWER(email) = LOWER(?)", subject).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.ErrorAbort(c, http.StatusUnauthorized, util.CodeAuth, "用户不存在")
			} else {
				util.ErrorAbort(c, http.StatusInternalServerError, util.CodeServerErr, "查询用户失败")
			}
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// CurrentUser 取出 AuthMiddleware 放入的用户，没有则返回 nil
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
