package handler

import (
	"errors"
	"net/http"
	"time"

	"blog-service/internal/middleware"
	"blog-service/internal/models"
	"blog-service/internal/repository"
	"blog-service/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BlogHandler 负责博客相关接口，全部需要登录。
// update/delete 只允许作者本人操作。
type BlogHandler struct {
	Blogs *repository.BlogRepository
}

func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{
		Blogs: repository.NewBlogRepository(db),
	}
}

type blogResp struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBlogResp(b *models.Blog) blogResp {
	return blogResp{
		ID:        b.ID,
		Title:     b.Title,
		Slug:      b.Slug,
		Content:   b.Content,
		AuthorID:  b.AuthorID,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// blogError 把仓储层错误映射成 HTTP 返回
func blogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "博客不存在")
	case errors.Is(err, repository.ErrForbidden):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "只能操作自己的博客")
	case errors.Is(err, repository.ErrSlugTaken):
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "slug 已存在")
	case errors.Is(err, repository.ErrInvalidSlug):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "slug 格式不正确")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "操作失败，请重试")
	}
}

// ListBlogs 返回全部博客
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.Blogs.List()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询博客失败")
		return
	}

	items := make([]blogResp, 0, len(blogs))
	for i := range blogs {
		items = append(items, toBlogResp(&blogs[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetBlog 按 ID 查询博客
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.Blogs.Get(id)
	if err != nil {
		blogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlogResp(blog))
}

type createBlogReq struct {
	Title    string `json:"title" binding:"required,max=255"`
	Slug     string `json:"slug" binding:"max=255"`
	Content  string `json:"content"`
	IsActive bool   `json:"is_active"`
}

// CreateBlog 新建博客。作者固定为当前登录用户，请求体里的
// author_id 一律忽略。slug 缺省时从标题派生。
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	var req createBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	blog, err := h.Blogs.Create(repository.BlogCreate{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		IsActive: req.IsActive,
	}, user.ID)
	if err != nil {
		blogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlogResp(blog))
}

type updateBlogReq struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"is_active"`
}

// UpdateBlog 部分更新：缺席字段不动，只能改自己的
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	if req.Title != nil && *req.Title == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "标题不能为空")
		return
	}

	blog, err := h.Blogs.Update(id, repository.BlogPatch{
		Title:    req.Title,
		Slug:     req.Slug,
		Content:  req.Content,
		IsActive: req.IsActive,
	}, user.ID)
	if err != nil {
		blogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlogResp(blog))
}

// DeleteBlog 删除博客，返回删除前的记录，只能删自己的
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.Blogs.Delete(id, user.ID)
	if err != nil {
		blogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlogResp(blog))
}
