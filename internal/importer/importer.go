package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/store"
)

// Importer CSV 导入器
// 把上传的检证数据 CSV 按订单号分组后写入数据集
type Importer struct {
	store *store.Store
}

// New 创建导入器
func New(st *store.Store) *Importer {
	return &Importer{store: st}
}

// Summary 导入结果摘要
type Summary struct {
	Total     int      `json:"total"`     // 订单号非空的行数
	Processed int      `json:"processed"` // 成功写入的行数
	Orders    int      `json:"orders"`    // 分组后的订单数
	Errors    []string `json:"errors"`    // 按订单号记录的失败信息
}

// Import 解析 CSV 并逐订单写入
// 文件整体不可解析时返回错误；单个订单写入失败只记入 Errors，继续后续订单
func (im *Importer) Import(datasetID string, r io.Reader) (*Summary, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	// 订单号为空的行直接丢弃，不计入 Total
	var validRows []Row
	for _, row := range rows {
		if row[ColOrderNumber] != "" {
			validRows = append(validRows, row)
		}
	}

	groups := groupByOrderNumber(validRows)

	summary := &Summary{
		Total:  len(validRows),
		Orders: len(groups.keys),
		Errors: []string{},
	}

	for _, orderNumber := range groups.keys {
		orderRows := groups.rows[orderNumber]

		if err := im.importGroup(datasetID, orderNumber, orderRows); err != nil {
			logger.Error(fmt.Sprintf("订单 %s 写入失败", orderNumber), err)
			summary.Errors = append(summary.Errors, fmt.Sprintf("注文番号 %s: 登録エラー", orderNumber))
			continue
		}

		summary.Processed += len(orderRows)
	}

	return summary, nil
}

// orderGroups 按首次出现顺序分组的行集合
// map 迭代顺序不确定，keys 单独记录分组顺序
type orderGroups struct {
	keys []string
	rows map[string][]Row
}

func groupByOrderNumber(rows []Row) *orderGroups {
	g := &orderGroups{rows: make(map[string][]Row)}
	for _, row := range rows {
		orderNumber := row[ColOrderNumber]
		if _, ok := g.rows[orderNumber]; !ok {
			g.keys = append(g.keys, orderNumber)
		}
		g.rows[orderNumber] = append(g.rows[orderNumber], row)
	}
	return g
}

// importGroup 写入一个订单及其全部商品
// 订单级字段取组内首行；订单插入失败时不再尝试商品
func (im *Importer) importGroup(datasetID, orderNumber string, orderRows []Row) error {
	firstRow := orderRows[0]

	order := &model.Order{
		DatasetID:     datasetID,
		OrderNumber:   orderNumber,
		TotalQuantity: parseIntDefault(firstRow[ColTotalQuantity]),
		ActualSize:    firstRow[ColActualSize],
		PredictedSize: firstRow[ColPredictedSize],
		FillRate:      parseFloatDefault(firstRow[ColFillRate]),
		Type:          firstRow[ColType],
	}

	if err := im.store.InsertOrder(order); err != nil {
		return err
	}

	products := make([]*model.Product, 0, len(orderRows))
	for _, row := range orderRows {
		products = append(products, &model.Product{
			OrderID:     order.ID,
			ProductCode: row[ColProductCode],
			ProductName: row[ColProductName],
			Category:    nullable(row[ColCategory]),
			Quantity:    parseIntDefault(row[ColQuantity]),
			Lx:          parseIntDefault(row[ColLx]),
			Ly:          parseIntDefault(row[ColLy]),
			Lz:          parseIntDefault(row[ColLz]),
		})
	}

	return im.store.BatchInsertProducts(products)
}

// parseIntDefault 解析整数，失败返回 0
func parseIntDefault(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// parseFloatDefault 解析小数，失败返回 0
// 充填率在 CSV 中即为小数（0.5 = 50%），此处不做换算
func parseFloatDefault(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
