package exporter

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
)

func strPtr(s string) *string { return &s }

func testOrder(number string, fillRate float64, actualURLs, predictedURLs []string) *model.OrderWithDetails {
	o := &model.OrderWithDetails{
		Order: model.Order{
			ID:            "order-" + number,
			OrderNumber:   number,
			TotalQuantity: 3,
			ActualSize:    "60サイズ",
			PredictedSize: "80サイズ",
			FillRate:      fillRate,
			Type:          "通常",
		},
		Products: []*model.Product{
			{ProductCode: "P1", ProductName: "商品1", Quantity: 1},
			{ProductCode: "P2", ProductName: "商品2", Quantity: 2},
		},
	}
	for _, u := range actualURLs {
		o.Images = append(o.Images, &model.OrderImage{URL: u, ImageType: model.ImageActual})
	}
	for _, u := range predictedURLs {
		o.Images = append(o.Images, &model.OrderImage{URL: u, ImageType: model.ImagePredicted})
	}
	return o
}

func TestBuildTable_RectangularImageColumns(t *testing.T) {
	t.Parallel()

	// 订单1: 実績2枚・予測0枚 / 订单2: 実績0枚・予測1枚
	orders := []*model.OrderWithDetails{
		testOrder("A1", 0.5, []string{"http://img/a1-1.jpg", "http://img/a1-2.jpg"}, nil),
		testOrder("A2", 0.5, nil, []string{"http://img/a2-p1.jpg"}),
	}

	table := BuildTable(orders)

	if table.MaxActualImages != 2 || table.MaxPredictedImages != 1 {
		t.Fatalf("max images=%d/%d, want 2/1", table.MaxActualImages, table.MaxPredictedImages)
	}
	wantCols := 11 + 2 + 1
	if len(table.Headers) != wantCols {
		t.Fatalf("headers=%d, want %d", len(table.Headers), wantCols)
	}
	if table.Headers[11] != "実績箱画像1" || table.Headers[12] != "実績箱画像2" || table.Headers[13] != "予測箱画像1" {
		t.Fatalf("image headers=%v", table.Headers[11:])
	}

	for i, row := range table.Rows {
		if len(row) != wantCols {
			t.Fatalf("row %d has %d cols, want %d", i, len(row), wantCols)
		}
	}

	// 订单1: 予測列为空串；订单2: 実績列全为空串
	row1, row2 := table.Rows[0], table.Rows[1]
	if row1[11] != "http://img/a1-1.jpg" || row1[12] != "http://img/a1-2.jpg" || row1[13] != "" {
		t.Fatalf("row1 image cells=%v", row1[11:])
	}
	if row2[11] != "" || row2[12] != "" || row2[13] != "http://img/a2-p1.jpg" {
		t.Fatalf("row2 image cells=%v", row2[11:])
	}
}

func TestBuildTable_BaseColumns(t *testing.T) {
	t.Parallel()

	order := testOrder("B1", 0.4567, nil, nil)
	order.Recorder = strPtr("山田")
	order.PocPackingSize = strPtr("コンパクト")

	table := BuildTable([]*model.OrderWithDetails{order})

	if len(table.Headers) != 11 {
		t.Fatalf("headers=%d, want 11 (画像なし)", len(table.Headers))
	}

	row := table.Rows[0]
	want := []interface{}{
		"B1",
		"P1, P2",
		"商品1, 商品2",
		"1, 2",
		3,
		"45.67%",
		"60サイズ",
		"80サイズ",
		"山田",
		"コンパクト",
		"", // メモ未入力
	}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("row=%v\nwant=%v", row, want)
	}
}

func TestBuildTable_NoOrders(t *testing.T) {
	t.Parallel()

	table := BuildTable(nil)
	if len(table.Headers) != 11 {
		t.Fatalf("headers=%d, want 11", len(table.Headers))
	}
	if len(table.Rows) != 0 {
		t.Fatalf("rows=%d, want 0", len(table.Rows))
	}
}

func TestBuildTable_Deterministic(t *testing.T) {
	t.Parallel()

	orders := []*model.OrderWithDetails{
		testOrder("C1", 0.12, []string{"http://img/c1.jpg"}, nil),
		testOrder("C2", 0.98, nil, nil),
	}

	first := BuildTable(orders)
	second := BuildTable(orders)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("BuildTable should be deterministic for identical input")
	}
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	t.Parallel()

	orders := []*model.OrderWithDetails{
		testOrder("D1", 0.5, []string{"http://img/d1.jpg"}, nil),
	}

	f, err := WriteWorkbook(BuildTable(orders))
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetName, err)
	}
	if len(rows) != 2 {
		t.Fatalf("sheet rows=%d, want 2 (ヘッダー+1件)", len(rows))
	}
	if rows[0][0] != "注文番号" || rows[1][0] != "D1" {
		t.Fatalf("cells=%q/%q", rows[0][0], rows[1][0])
	}
	if rows[1][5] != "50.00%" {
		t.Fatalf("充填率 cell=%q, want 50.00%%", rows[1][5])
	}

	// 固定列与照片列的列宽
	width, err := f.GetColWidth(SheetName, "A")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if width != 12 {
		t.Fatalf("col A width=%v, want 12", width)
	}
	width, err = f.GetColWidth(SheetName, "L")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if width != 50 {
		t.Fatalf("col L width=%v, want 50", width)
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	got := Filename(now)
	want := fmt.Sprintf("%s_2026-01-15.xlsx", SheetName)
	if got != want {
		t.Fatalf("filename=%q, want %q", got, want)
	}
}
