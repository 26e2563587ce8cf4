package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/importer"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
)

// 摘要中展示的错误条数上限，完整列表仍在 errors 字段返回
const maxErrorPreview = 5

// Import 导入检证数据 CSV
// POST /api/import (multipart: name=数据集名, file=CSV)
func (h *Handler) Import(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))

	fileHeader, err := c.FormFile("file")
	if name == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "データセット名とCSVファイルを選択してください"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ファイルの読み込みに失敗しました"})
		return
	}
	defer file.Close()

	// 数据集创建失败视为整体失败，不进入分组处理
	dataset, err := h.store.CreateDataset(name)
	if err != nil {
		logger.Error("创建数据集失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データセットの作成に失敗しました"})
		return
	}

	summary, err := importer.New(h.store).Import(dataset.ID, file)
	if err != nil {
		logger.Error("CSV 解析失败", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSVの読み込みエラー: ファイルの形式を確認してください"})
		return
	}

	logger.Infow("CSV 导入完成",
		"dataset", dataset.ID,
		"total", summary.Total,
		"processed", summary.Processed,
		"orders", summary.Orders,
		"errors", len(summary.Errors),
	)

	c.JSON(http.StatusOK, gin.H{
		"dataset":      dataset,
		"total":        summary.Total,
		"processed":    summary.Processed,
		"orders":       summary.Orders,
		"errors":       summary.Errors,
		"errorPreview": previewErrors(summary.Errors),
		"message":      importMessage(summary),
	})
}

// previewErrors 截取展示用的错误列表
func previewErrors(errs []string) []string {
	if len(errs) <= maxErrorPreview {
		return errs
	}
	preview := make([]string, 0, maxErrorPreview+1)
	preview = append(preview, errs[:maxErrorPreview]...)
	preview = append(preview, fmt.Sprintf("...他 %d件", len(errs)-maxErrorPreview))
	return preview
}

func importMessage(s *importer.Summary) string {
	if len(s.Errors) == 0 {
		return fmt.Sprintf("%d件の注文データを登録しました", s.Orders)
	}
	return fmt.Sprintf("%d件のエラーが発生しました", len(s.Errors))
}
