package repository

import (
	"errors"
	"fmt"
	"strings"

	"blog-service/internal/models"
	"blog-service/internal/util"

	"gorm.io/gorm"
)

// BlogRepository 负责博客表的增删改查。
// update/delete 必须带上操作者 ID 做归属校验；create 的 author
// 一律取会话里解析出的用户，不接受请求体里的 author_id。
type BlogRepository struct {
	DB *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{DB: db}
}

// BlogCreate 新建博客的输入
type BlogCreate struct {
	Title    string
	Slug     string // 为空时从 Title 派生
	Content  string
	IsActive bool
}

// BlogPatch 部分更新：只有非 nil 的字段会被写入
type BlogPatch struct {
	Title    *string
	Slug     *string
	Content  *string
	IsActive *bool
}

func (r *BlogRepository) List() ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.DB.Order("created_at DESC, id DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) ListByAuthor(authorID uint) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.DB.Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs by author: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Get(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.DB.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog %d: %w", id, err)
	}
	return &blog, nil
}

// Create 创建博客，slug 冲突返回 ErrSlugTaken
func (r *BlogRepository) Create(in BlogCreate, authorID uint) (*models.Blog, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = util.Slugify(in.Title)
	}
	if err := util.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}

	blog := models.Blog{
		Title:    strings.TrimSpace(in.Title),
		Slug:     slug,
		Content:  in.Content,
		AuthorID: authorID,
		IsActive: in.IsActive,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Blog{}).
			Where("slug = ?", slug).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if count > 0 {
			return ErrSlugTaken
		}
		if err := tx.Create(&blog).Error; err != nil {
			return fmt.Errorf("create blog: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Update 部分更新，只能改自己的博客，否则 ErrForbidden
func (r *BlogRepository) Update(id uint, patch BlogPatch, actorID uint) (*models.Blog, error) {
	var blog models.Blog

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get blog %d: %w", id, err)
		}
		if blog.AuthorID != actorID {
			return ErrForbidden
		}

		if patch.Title != nil {
			blog.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Slug != nil {
			slug := strings.TrimSpace(*patch.Slug)
			if err := util.ValidateSlug(slug); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidSlug, err)
			}
			var count int64
			if err := tx.Model(&models.Blog{}).
				Where("slug = ? AND id <> ?", slug, id).
				Count(&count).Error; err != nil {
				return fmt.Errorf("check slug: %w", err)
			}
			if count > 0 {
				return ErrSlugTaken
			}
			blog.Slug = slug
		}
		if patch.Content != nil {
			blog.Content = *patch.Content
		}
		if patch.IsActive != nil {
			blog.IsActive = *patch.IsActive
		}

		if err := tx.Save(&blog).Error; err != nil {
			return fmt.Errorf("save blog %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Delete 删除博客并返回删除前的记录，只能删自己的
func (r *BlogRepository) Delete(id uint, actorID uint) (*models.Blog, error) {
	var blog models.Blog

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get blog %d: %w", id, err)
		}
		if blog.AuthorID != actorID {
			return ErrForbidden
		}
		if err := tx.Delete(&models.Blog{}, id).Error; err != nil {
			return fmt.Errorf("delete blog %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
