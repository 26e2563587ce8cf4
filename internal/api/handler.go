package api

import (
	"github.com/gin-gonic/gin"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/blob"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// Handler API 处理器
type Handler struct {
	store     *store.Store
	blob      *blob.Client // 未配置对象存储时为 nil
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store, blobClient *blob.Client) *Handler {
	return &Handler{
		store:     store,
		blob:      blobClient,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 数据集
	router.GET("/datasets", h.ListDatasets)
	router.POST("/datasets", h.CreateDataset)
	router.GET("/datasets/selected", h.GetSelectedDataset)
	router.POST("/datasets/select", h.SelectDataset)
	router.DELETE("/datasets/:id", h.DeleteDataset)

	// CSV 导入
	router.POST("/import", h.Import)

	// 订单查询与录入
	router.GET("/orders", h.ListOrders)
	router.GET("/orders/lookup", h.LookupOrder)
	router.PATCH("/orders/:id", h.UpdateOrder)
	router.PATCH("/products/:id", h.UpdateProductChecked)

	// 照片
	router.POST("/orders/:id/images", h.UploadImage)
	router.DELETE("/images/:id", h.DeleteImage)

	// 梱包尺寸候选
	router.GET("/packing-sizes", h.ListPackingSizes)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
