package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// PageSize 订单列表每页条数
const PageSize = 20

// orderPayload 列表/查询响应中的订单，附带展示用充填率
type orderPayload struct {
	*model.OrderWithDetails
	FillRateDisplay string `json:"fillRateDisplay"`
}

func toPayload(o *model.OrderWithDetails) orderPayload {
	return orderPayload{
		OrderWithDetails: o,
		FillRateDisplay:  o.FillRateDisplay(),
	}
}

// ListOrders 分页列出数据集内的订单
// GET /api/orders?dataset_id=&page=
func (h *Handler) ListOrders(c *gin.Context) {
	datasetID := c.Query("dataset_id")
	if datasetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset_id を指定してください"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	totalCount, err := h.store.CountOrders(datasetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データの取得に失敗しました"})
		return
	}

	orders, err := h.store.ListOrders(store.OrderQueryOptions{
		DatasetID: datasetID,
		Limit:     PageSize,
		Offset:    (page - 1) * PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データの取得に失敗しました"})
		return
	}

	items := make([]orderPayload, 0, len(orders))
	for _, o := range orders {
		items = append(items, toPayload(o))
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCount": totalCount,
		"page":       page,
		"pageSize":   PageSize,
		"items":      items,
	})
}

// LookupOrder 按订单号查询单个订单
// GET /api/orders/lookup?dataset_id=&order_number=
func (h *Handler) LookupOrder(c *gin.Context) {
	datasetID := c.Query("dataset_id")
	orderNumber := strings.TrimSpace(c.Query("order_number"))
	if datasetID == "" || orderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "注文番号を入力してください"})
		return
	}

	order, err := h.store.GetOrderByNumber(datasetID, orderNumber)
	if err != nil {
		// 查无此单与其他失败分开上报
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("注文番号「%s」は存在しません", orderNumber),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注文の検索に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, toPayload(order))
}

type updateOrderRequest struct {
	Recorder       *string `json:"recorder"`
	PocPackingSize *string `json:"pocPackingSize"`
	Memo           *string `json:"memo"`
}

// UpdateOrder 更新作业员录入字段（记入者 / PoC梱包尺寸 / 备注）
// PATCH /api/orders/:id
func (h *Handler) UpdateOrder(c *gin.Context) {
	id := c.Param("id")

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}
	if req.Recorder == nil && req.PocPackingSize == nil && req.Memo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "更新する項目がありません"})
		return
	}

	if req.Recorder != nil {
		if err := h.store.UpdateOrderRecorder(id, *req.Recorder); err != nil {
			h.respondUpdateError(c, err)
			return
		}
	}
	if req.PocPackingSize != nil {
		if err := h.store.UpdateOrderPackingSize(id, *req.PocPackingSize); err != nil {
			h.respondUpdateError(c, err)
			return
		}
	}
	if req.Memo != nil {
		if err := h.store.UpdateOrderMemo(id, *req.Memo); err != nil {
			h.respondUpdateError(c, err)
			return
		}
	}

	order, err := h.store.GetOrder(id)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPayload(order))
}

type updateProductRequest struct {
	IsChecked *bool `json:"isChecked" binding:"required"`
}

// UpdateProductChecked 更新商品拣货确认状态
// PATCH /api/products/:id
func (h *Handler) UpdateProductChecked(c *gin.Context) {
	id := c.Param("id")

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}

	if err := h.store.UpdateProductChecked(id, *req.IsChecked); err != nil {
		h.respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "isChecked": *req.IsChecked})
}

func (h *Handler) respondUpdateError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "対象のレコードが見つかりません"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "更新に失敗しました"})
}
