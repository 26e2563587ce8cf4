package exporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// SheetName 导出工作表名
const SheetName = "検証データ"

// baseHeaders 固定列（顺序即导出顺序），照片列按需追加在其后
var baseHeaders = []string{
	"注文番号",
	"商品コードリスト",
	"商品名リスト",
	"数量リスト",
	"総数量",
	"充填率",
	"箱実績",
	"箱予想",
	"記入者",
	"PoC梱包サイズ",
	"メモ",
}

// baseColumnWidths 固定列宽，照片列统一 50
var baseColumnWidths = []float64{12, 20, 40, 15, 8, 10, 12, 12, 12, 15, 30}

const imageColumnWidth = 50

// Exporter 数据集导出器
type Exporter struct {
	store *store.Store
}

// New 创建导出器
func New(st *store.Store) *Exporter {
	return &Exporter{store: st}
}

// Table 展平后的导出表
// 所有行共享同一列集：照片列数取全部订单中该种别照片数的最大值
type Table struct {
	Headers            []string
	Rows               [][]interface{}
	MaxActualImages    int
	MaxPredictedImages int
}

// BuildTable 把已联结商品与照片的订单列表展平为矩形表
// 输入应已按订单号升序排列
func BuildTable(orders []*model.OrderWithDetails) *Table {
	// 第一遍：统计照片列数
	maxActual := 0
	maxPredicted := 0
	for _, order := range orders {
		if n := len(order.ImagesByType(model.ImageActual)); n > maxActual {
			maxActual = n
		}
		if n := len(order.ImagesByType(model.ImagePredicted)); n > maxPredicted {
			maxPredicted = n
		}
	}

	headers := make([]string, 0, len(baseHeaders)+maxActual+maxPredicted)
	headers = append(headers, baseHeaders...)
	for i := 0; i < maxActual; i++ {
		headers = append(headers, fmt.Sprintf("実績箱画像%d", i+1))
	}
	for i := 0; i < maxPredicted; i++ {
		headers = append(headers, fmt.Sprintf("予測箱画像%d", i+1))
	}

	// 第二遍：逐订单生成行
	rows := make([][]interface{}, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, buildRow(order, maxActual, maxPredicted))
	}

	return &Table{
		Headers:            headers,
		Rows:               rows,
		MaxActualImages:    maxActual,
		MaxPredictedImages: maxPredicted,
	}
}

func buildRow(order *model.OrderWithDetails, maxActual, maxPredicted int) []interface{} {
	codes := make([]string, 0, len(order.Products))
	names := make([]string, 0, len(order.Products))
	quantities := make([]string, 0, len(order.Products))
	for _, p := range order.Products {
		codes = append(codes, p.ProductCode)
		names = append(names, p.ProductName)
		quantities = append(quantities, fmt.Sprintf("%d", p.Quantity))
	}

	row := make([]interface{}, 0, len(baseHeaders)+maxActual+maxPredicted)
	row = append(row,
		order.OrderNumber,
		strings.Join(codes, ", "),
		strings.Join(names, ", "),
		strings.Join(quantities, ", "),
		order.TotalQuantity,
		order.FillRateExport(),
		order.ActualSize,
		order.PredictedSize,
		emptyIfNil(order.Recorder),
		emptyIfNil(order.PocPackingSize),
		emptyIfNil(order.Memo),
	)

	// 照片不足的栏位补空串，保证各订单的列对齐
	actual := order.ImagesByType(model.ImageActual)
	for i := 0; i < maxActual; i++ {
		row = append(row, imageURLAt(actual, i))
	}
	predicted := order.ImagesByType(model.ImagePredicted)
	for i := 0; i < maxPredicted; i++ {
		row = append(row, imageURLAt(predicted, i))
	}

	return row
}

func imageURLAt(images []*model.OrderImage, i int) string {
	if i < len(images) {
		return images[i].URL
	}
	return ""
}

func emptyIfNil(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Export 读取数据集全部订单并生成工作簿
func (e *Exporter) Export(datasetID string) (*excelize.File, error) {
	orders, err := e.store.ListOrders(store.OrderQueryOptions{DatasetID: datasetID})
	if err != nil {
		return nil, fmt.Errorf("读取订单数据失败: %w", err)
	}

	return WriteWorkbook(BuildTable(orders))
}

// WriteWorkbook 把展平表写入单 sheet 工作簿并设置列宽
func WriteWorkbook(table *Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(SheetName, cell, &r); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入第 %d 行失败: %w", i+2, err)
		}
	}

	for i := range table.Headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		width := float64(imageColumnWidth)
		if i < len(baseColumnWidths) {
			width = baseColumnWidths[i]
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("设置列宽失败: %w", err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Filename 生成带当天日期的下载文件名
func Filename(now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", SheetName, now.Format("2006-01-02"))
}
