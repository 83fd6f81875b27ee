package repository

import (
	"errors"
	"fmt"
	"strings"

	"blog-service/internal/models"
	"blog-service/internal/util"

	"gorm.io/gorm"
)

// UserRepository 负责用户表的增删改查。
// 密码哈希是仓储层的职责，调用方永远只传明文。
type UserRepository struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserRepository(db *gorm.DB, bcryptCost int) *UserRepository {
	return &UserRepository{
		DB:         db,
		BcryptCost: bcryptCost,
	}
}

// UserPatch 部分更新：只有非 nil 的字段会被写入
type UserPatch struct {
	Email    *string
	FullName *string
	Password *string
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.DB.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail 按邮箱（不区分大小写）查找用户
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// Create 创建用户，邮箱冲突返回 ErrEmailTaken
func (r *UserRepository) Create(email, fullName, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	hash, err := util.HashPassword(password, r.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = LOWER(?)", email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate 校验邮箱+密码。用户不存在和密码错误对调用方不可区分。
func (r *UserRepository) Authenticate(email, password string) (*models.User, bool) {
	user, err := r.GetByEmail(email)
	if err != nil {
		return nil, false
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, false
	}
	return user, true
}

// Update 部分更新，缺席的字段保持原值。改密码会重新哈希。
func (r *UserRepository) Update(id uint, patch UserPatch) (*models.User, error) {
	var user models.User

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get user %d: %w", id, err)
		}

		if patch.Email != nil {
			email := strings.TrimSpace(*patch.Email)
			var count int64
			if err := tx.Model(&models.User{}).
				Where("LOWER(email) = LOWER(?) AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if count > 0 {
				return ErrEmailTaken
			}
			user.Email = email
		}
		if patch.FullName != nil {
			user.FullName = strings.TrimSpace(*patch.FullName)
		}
		if patch.Password != nil {
			hash, err := util.HashPassword(*patch.Password, r.BcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete 删除用户并返回删除前的记录
func (r *UserRepository) Delete(id uint) (*models.User, error) {
	var user models.User

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get user %d: %w", id, err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
