package router

import (
	"blog-service/internal/config"
	"blog-service/internal/handler"
	"blog-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and registers all routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 登录/注册接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, cfg.JWT, cfg.Security.BcryptCost)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)

	// 需要登录才能访问的接口
	protected := r.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.RequestLog(),
	)

	userHandler := handler.NewUserHandler(db, cfg.Security.BcryptCost)
	protected.GET("/me", userHandler.GetMe)
	protected.GET("/users/", userHandler.ListUsers)
	protected.GET("/users/:id", userHandler.GetUser)
	protected.PUT("/users/:id", userHandler.UpdateUser)
	protected.DELETE("/users/:id", userHandler.DeleteUser)

	blogHandler := handler.NewBlogHandler(db)
	protected.GET("/blogs/", blogHandler.ListBlogs)
	protected.POST("/blogs/", blogHandler.CreateBlog)
	protected.GET("/blogs/:id", blogHandler.GetBlog)
	protected.PUT("/blogs/:id", blogHandler.UpdateBlog)
	protected.DELETE("/blogs/:id", blogHandler.DeleteBlog)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/blogs/export/csv", exportHandler.ExportCSV)
	protected.GET("/blogs/export/xlsx", exportHandler.ExportXLSX)

	return r
}
