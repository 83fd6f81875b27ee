package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"blog-service/internal/config"
	"blog-service/internal/repository"
	"blog-service/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 登录后 token 同时写进这个 cookie，浏览器端不用自己带 Header
const tokenCookieName = "access_token"

// AuthHandler 负责注册/登录/登出接口
type AuthHandler struct {
	Users     *repository.UserRepository
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// NewAuthHandler 构造函数
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig, bcryptCost int) *AuthHandler {
	ttlHours := jwtCfg.ExpireHours
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:     repository.NewUserRepository(db, bcryptCost),
		JWTSecret: jwtCfg.Secret,
		Issuer:    jwtCfg.Issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

// ---------- 注册 ----------

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	FullName string `json:"full_name" binding:"max=64"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "邮箱格式不正确")
		return
	}

	user, err := h.Users.Create(req.Email, strings.TrimSpace(req.FullName), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "该邮箱已注册")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建用户失败")
		}
		return
	}

	c.JSON(http.StatusOK, toUserResp(user))
}

// ---------- 登录 ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	// 用户不存在和密码错误返回同一条文案
	user, ok := h.Users.Authenticate(strings.TrimSpace(req.Email), req.Password)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "邮箱或密码错误")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "生成 token 失败")
		return
	}

	c.SetCookie(tokenCookieName, token, int(h.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, tokenResp{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// ---------- 登出 ----------

// Logout 清掉 cookie。token 本身是无状态的，到期前仍可通过 Header 使用。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(tokenCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}
