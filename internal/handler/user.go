package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog-service/internal/middleware"
	"blog-service/internal/models"
	"blog-service/internal/repository"
	"blog-service/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler 负责用户相关接口，全部需要登录
type UserHandler struct {
	Users *repository.UserRepository
}

func NewUserHandler(db *gorm.DB, bcryptCost int) *UserHandler {
	return &UserHandler{
		Users: repository.NewUserRepository(db, bcryptCost),
	}
}

// userResp 对外的用户表示，永远不含密码哈希
type userResp struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// parseIDParam 解析路径里的 :id
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID 不合法")
		return 0, false
	}
	return uint(id), true
}

// GetMe 返回当前登录用户信息（需要经过 AuthMiddleware）
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}

// ListUsers 返回全部用户
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询用户失败")
		return
	}

	items := make([]userResp, 0, len(users))
	for i := range users {
		items = append(items, toUserResp(&users[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetUser 按 ID 查询用户
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.Users.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "用户不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询用户失败")
		}
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}

type updateUserReq struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

// UpdateUser 部分更新：缺席字段不动
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := util.ValidateEmail(email); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "邮箱格式不正确")
			return
		}
		req.Email = &email
	}
	if req.Password != nil && *req.Password == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "密码不能为空")
		return
	}

	user, err := h.Users.Update(id, repository.UserPatch{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "用户不存在")
		case errors.Is(err, repository.ErrEmailTaken):
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "该邮箱已注册")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "更新用户失败")
		}
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}

// DeleteUser 删除用户，返回删除前的记录
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.Users.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "用户不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "删除用户失败")
		}
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}
