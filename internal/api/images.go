package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/blob"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// UploadImage 上传订单照片
// POST /api/orders/:id/images (multipart: file=照片, image_type=actual|predicted)
func (h *Handler) UploadImage(c *gin.Context) {
	if h.blob == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "画像ストレージが設定されていません"})
		return
	}

	order, err := h.store.GetOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "対象の注文が見つかりません"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	imageType := model.ImageType(c.DefaultPostForm("image_type", string(model.ImageActual)))
	if imageType != model.ImageActual && imageType != model.ImagePredicted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_type は actual / predicted のいずれかです"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "画像ファイルが見つかりません"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ファイルの読み込みに失敗しました"})
		return
	}
	defer file.Close()

	// 对象名: <订单号>/<毫秒时间戳>.jpg
	objectName := fmt.Sprintf("%s/%d.jpg", order.OrderNumber, time.Now().UnixMilli())

	url, err := h.blob.Upload(c.Request.Context(), objectName, file, fileHeader.Size, "image/jpeg")
	if err != nil {
		logger.Error("照片上传失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の保存に失敗しました"})
		return
	}

	img := &model.OrderImage{
		OrderID:   order.ID,
		URL:       url,
		ImageType: imageType,
	}
	if err := h.store.InsertImage(img); err != nil {
		logger.Error("照片记录写入失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の保存に失敗しました"})
		return
	}

	saved, err := h.store.GetImage(img.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// DeleteImage 删除订单照片（对象存储与记录）
// DELETE /api/images/:id
func (h *Handler) DeleteImage(c *gin.Context) {
	id := c.Param("id")

	img, err := h.store.GetImage(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "対象の画像が見つかりません"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 对象删除失败不阻塞记录删除（对象可能已不存在）
	if h.blob != nil {
		if err := h.blob.Remove(c.Request.Context(), blob.ObjectFromURL(img.URL)); err != nil {
			logger.Warnf("删除存储对象失败: %v", err)
		}
	}

	if err := h.store.DeleteImage(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の削除に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
