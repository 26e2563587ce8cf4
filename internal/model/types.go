package model

import (
	"fmt"
	"time"
)

// ImageType 画像种别
type ImageType string

const (
	ImageActual    ImageType = "actual"    // 実績箱（实际装箱）
	ImagePredicted ImageType = "predicted" // 予測箱（预测装箱）
)

// PackingSizes 作业员可选的 PoC 梱包尺寸列表
var PackingSizes = []string{
	"ネコポス大",
	"ネコポス小",
	"コンパクト",
	"60サイズ",
	"80サイズ",
	"100サイズ",
	"120サイズ",
}

// Dataset 数据集（一次 CSV 导入产生的订单批次）
type Dataset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order 订单数据模型
type Order struct {
	ID            string  `json:"id"`
	DatasetID     string  `json:"datasetId"`
	OrderNumber   string  `json:"orderNumber"`
	TotalQuantity int     `json:"totalQuantity"`
	ActualSize    string  `json:"actualSize"`    // 適用サイズ(実績)
	PredictedSize string  `json:"predictedSize"` // 適用サイズ(予測)
	FillRate      float64 `json:"fillRate"`      // 充填率，存储为小数（0.5 = 50%）
	Type          string  `json:"type"`          // 種別

	// 作业员录入字段，导入时为空
	Recorder       *string `json:"recorder"`
	PocPackingSize *string `json:"pocPackingSize"`
	Memo           *string `json:"memo"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FillRateExport 导出用充填率（两位小数）
func (o *Order) FillRateExport() string {
	return fmt.Sprintf("%.2f%%", o.FillRate*100)
}

// FillRateDisplay 列表展示用充填率（一位小数）
func (o *Order) FillRateDisplay() string {
	return fmt.Sprintf("%.1f%%", o.FillRate*100)
}

// Product 商品数据模型，属于唯一一个订单
type Product struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"orderId"`
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	Category    *string `json:"category"`
	Quantity    int     `json:"quantity"`

	// 商品三维尺寸
	Lx int `json:"lx"`
	Ly int `json:"ly"`
	Lz int `json:"lz"`

	IsChecked bool      `json:"isChecked"` // 拣货确认状态
	CreatedAt time.Time `json:"createdAt"`
}

// OrderImage 订单照片记录
type OrderImage struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	URL       string    `json:"url"`
	ImageType ImageType `json:"imageType"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderWithDetails 订单及其关联的商品、照片（导出与查询的联合视图）
type OrderWithDetails struct {
	Order
	Products []*Product    `json:"products"`
	Images   []*OrderImage `json:"images"`
}

// ImagesByType 按种别筛选照片，保持原有顺序
func (o *OrderWithDetails) ImagesByType(t ImageType) []*OrderImage {
	var out []*OrderImage
	for _, img := range o.Images {
		if img.ImageType == t {
			out = append(out, img)
		}
	}
	return out
}
