package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/exporter"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
)

type exportRequest struct {
	DatasetID string `json:"datasetId"`
}

// Export 导出数据集为 Excel，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DatasetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datasetId を指定してください"})
		return
	}

	file, err := exporter.New(h.store).Export(req.DatasetID)
	if err != nil {
		logger.Error("导出失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Excelファイルの作成に失敗しました"})
		return
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("konpo_export_%s.xlsx", uuid.New().String()))
	if err := file.SaveAs(tempPath); err != nil {
		logger.Error("写入导出文件失败", err)
		_ = os.Remove(tempPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Excelファイルの作成に失敗しました"})
		return
	}

	filename := exporter.Filename(time.Now())
	token := h.downloads.put(tempPath, filename, 10*time.Minute)

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": fmt.Sprintf("/api/export/download/%s", token),
		"filename":    filename,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token が必要です"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ダウンロードリンクの有効期限が切れています"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "エクスポートファイルが存在しません"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition 构造下载响应头
// ASCII 回退名 + RFC 5987 编码的日文文件名
// 回退名的日期取自文件名本身，避免跨日下载时两者不一致
func buildExportContentDisposition(filename string) string {
	date := strings.TrimSuffix(strings.TrimPrefix(filename, exporter.SheetName+"_"), ".xlsx")
	fallback := fmt.Sprintf("packing-report-%s.xlsx", date)
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		fallback, url.PathEscape(filename))
}
