package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
)

// CSV 期望的表头（首行必须包含 ColOrderNumber，其余列缺失时按空值处理）
const (
	ColOrderNumber   = "注文番号"
	ColProductCode   = "商品コード"
	ColProductName   = "商品名"
	ColCategory      = "カテゴリ"
	ColQuantity      = "数量"
	ColType          = "種別"
	ColActualSize    = "適用サイズ_実績"
	ColPredictedSize = "適用サイズ_予測"
	ColTotalQuantity = "総数量"
	ColFillRate      = "充填率"
	ColLx            = "lx"
	ColLy            = "ly"
	ColLz            = "lz"
)

// Row 一行 CSV 数据，列名 → 原始字符串
type Row map[string]string

// skipBOM 跳过 UTF-8 BOM（Excel 导出的 CSV 常见）
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}

// readRows 读取整个 CSV，首行为表头
// 整个文件不可解析时返回错误；单行读取失败仅告警并跳过
func readRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := colIndex[name]; !ok {
			colIndex[name] = i
		}
	}

	var rows []Row
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warnf("CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}

		row := make(Row, len(colIndex))
		for name, idx := range colIndex {
			if idx < len(rec) {
				row[name] = rec[idx]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
