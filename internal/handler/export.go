package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"blog-service/internal/middleware"
	"blog-service/internal/models"
	"blog-service/internal/repository"
	"blog-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 把当前用户自己的博客导出成 CSV / XLSX
type ExportHandler struct {
	Blogs *repository.BlogRepository
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{
		Blogs: repository.NewBlogRepository(db),
	}
}

var exportHeaders = []string{"ID", "标题", "Slug", "状态", "创建时间", "内容"}

func exportRow(b *models.Blog) []string {
	status := "草稿"
	if b.IsActive {
		status = "已发布"
	}
	return []string{
		fmt.Sprintf("%d", b.ID),
		b.Title,
		b.Slug,
		status,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
		b.Content,
	}
}

// ExportCSV 导出博客为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	blogs, err := h.Blogs.ListByAuthor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"blogs_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM（让 Excel 正确识别中文）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range blogs {
		writer.Write(exportRow(&blogs[i]))
	}
}

// ExportXLSX 导出博客为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	blogs, err := h.Blogs.ListByAuthor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	f := excelize.NewFile()
	sheetName := "我的博客"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建工作表失败")
		return
	}
	f.SetActiveSheet(index)

	for i, head := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx := range blogs {
		row := idx + 2
		for col, val := range exportRow(&blogs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 20)
	f.SetColWidth(sheetName, "F", "F", 50)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"blogs_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "导出失败")
	}
}
