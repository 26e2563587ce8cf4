package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// ListDatasets 列出全部数据集（新建在前）
// GET /api/datasets
func (h *Handler) ListDatasets(c *gin.Context) {
	datasets, err := h.store.ListDatasets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データセットの取得に失敗しました"})
		return
	}
	if datasets == nil {
		datasets = []*model.Dataset{}
	}
	c.JSON(http.StatusOK, gin.H{"items": datasets})
}

type createDatasetRequest struct {
	Name string `json:"name"`
}

// CreateDataset 创建空数据集
// POST /api/datasets
func (h *Handler) CreateDataset(c *gin.Context) {
	var req createDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "データセット名を入力してください"})
		return
	}

	dataset, err := h.store.CreateDataset(strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データセットの作成に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, dataset)
}

// DeleteDataset 删除数据集，订单、商品、照片随外键级联删除
// DELETE /api/datasets/:id
func (h *Handler) DeleteDataset(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.DeleteDataset(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "データセットが存在しません"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データセットの削除に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GetSelectedDataset 获取当前选中的数据集
// GET /api/datasets/selected
func (h *Handler) GetSelectedDataset(c *gin.Context) {
	id, err := h.store.GetSetting(store.SettingSelectedDataset)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"dataset": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dataset, err := h.store.GetDataset(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// 选中的数据集已被删除，视为未选中
			c.JSON(http.StatusOK, gin.H{"dataset": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dataset": dataset})
}

type selectDatasetRequest struct {
	ID string `json:"id"`
}

// SelectDataset 切换当前选中的数据集
// POST /api/datasets/select
func (h *Handler) SelectDataset(c *gin.Context) {
	var req selectDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}

	// 校验目标数据集存在，避免选中悬空 ID
	if _, err := h.store.GetDataset(req.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "データセットが存在しません"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetSetting(store.SettingSelectedDataset, req.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"selected": req.ID})
}

// ListPackingSizes 返回 PoC 梱包尺寸候选
// GET /api/packing-sizes
func (h *Handler) ListPackingSizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": model.PackingSizes})
}
