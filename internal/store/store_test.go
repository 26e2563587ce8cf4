package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "konpo.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOrderLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	dataset, err := st.CreateDataset("2026年1月検証データ")
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}

	order := &model.Order{
		DatasetID:     dataset.ID,
		OrderNumber:   "A100",
		TotalQuantity: 5,
		ActualSize:    "80サイズ",
		PredictedSize: "100サイズ",
		FillRate:      0.75,
		Type:          "通常",
	}
	if err := st.InsertOrder(order); err != nil {
		t.Fatalf("insert order: %v", err)
	}
	if order.ID == "" {
		t.Fatalf("insert should assign an id")
	}

	products := []*model.Product{
		{OrderID: order.ID, ProductCode: "P1", ProductName: "商品1", Quantity: 2, Lx: 10, Ly: 20, Lz: 30},
		{OrderID: order.ID, ProductCode: "P2", ProductName: "商品2", Quantity: 3},
	}
	if err := st.BatchInsertProducts(products); err != nil {
		t.Fatalf("insert products: %v", err)
	}

	if err := st.InsertImage(&model.OrderImage{OrderID: order.ID, URL: "http://img/1.jpg", ImageType: model.ImageActual}); err != nil {
		t.Fatalf("insert image: %v", err)
	}

	got, err := st.GetOrderByNumber(dataset.ID, "A100")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.FillRate != 0.75 || got.TotalQuantity != 5 {
		t.Fatalf("order=%+v", got.Order)
	}
	if len(got.Products) != 2 || got.Products[0].ProductCode != "P1" {
		t.Fatalf("products=%v", got.Products)
	}
	if len(got.Images) != 1 || got.Images[0].ImageType != model.ImageActual {
		t.Fatalf("images=%v", got.Images)
	}
	if got.Recorder != nil {
		t.Fatalf("recorder should start null")
	}

	// 作业员录入字段的逐项更新
	if err := st.UpdateOrderRecorder(order.ID, "山田"); err != nil {
		t.Fatalf("update recorder: %v", err)
	}
	if err := st.UpdateOrderPackingSize(order.ID, "コンパクト"); err != nil {
		t.Fatalf("update packing size: %v", err)
	}
	if err := st.UpdateOrderMemo(order.ID, "要再確認"); err != nil {
		t.Fatalf("update memo: %v", err)
	}

	got, err = st.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order by id: %v", err)
	}
	if got.Recorder == nil || *got.Recorder != "山田" {
		t.Fatalf("recorder=%v", got.Recorder)
	}
	if got.PocPackingSize == nil || *got.PocPackingSize != "コンパクト" {
		t.Fatalf("poc_packing_size=%v", got.PocPackingSize)
	}
	if got.Memo == nil || *got.Memo != "要再確認" {
		t.Fatalf("memo=%v", got.Memo)
	}
}

func TestGetOrderByNumber_NotFound(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	dataset, err := st.CreateDataset("空データセット")
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}

	_, err = st.GetOrderByNumber(dataset.ID, "ZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestInsertOrder_DuplicateNumberFails(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	dataset, _ := st.CreateDataset("重複テスト")
	if err := st.InsertOrder(&model.Order{DatasetID: dataset.ID, OrderNumber: "A1"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := st.InsertOrder(&model.Order{DatasetID: dataset.ID, OrderNumber: "A1"}); err == nil {
		t.Fatalf("duplicate order number should fail")
	}
}

func TestListOrders_PaginationAndSort(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	dataset, _ := st.CreateDataset("ページングテスト")

	// 逆序插入，读取时应按订单号升序
	for _, n := range []string{"A3", "A1", "A2"} {
		if err := st.InsertOrder(&model.Order{DatasetID: dataset.ID, OrderNumber: n}); err != nil {
			t.Fatalf("insert %s: %v", n, err)
		}
	}

	count, err := st.CountOrders(dataset.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count=%d, want 3", count)
	}

	page, err := st.ListOrders(OrderQueryOptions{DatasetID: dataset.ID, Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].OrderNumber != "A1" || page[1].OrderNumber != "A2" {
		t.Fatalf("page1=%v", orderNumbers(page))
	}

	page, err = st.ListOrders(OrderQueryOptions{DatasetID: dataset.ID, Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list page2: %v", err)
	}
	if len(page) != 1 || page[0].OrderNumber != "A3" {
		t.Fatalf("page2=%v", orderNumbers(page))
	}
}

func orderNumbers(orders []*model.OrderWithDetails) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.OrderNumber)
	}
	return out
}

func TestProductCheckedToggle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	dataset, _ := st.CreateDataset("チェックテスト")
	order := &model.Order{DatasetID: dataset.ID, OrderNumber: "A1"}
	if err := st.InsertOrder(order); err != nil {
		t.Fatalf("insert order: %v", err)
	}
	products := []*model.Product{{OrderID: order.ID, ProductCode: "P1"}}
	if err := st.BatchInsertProducts(products); err != nil {
		t.Fatalf("insert products: %v", err)
	}

	if err := st.UpdateProductChecked(products[0].ID, true); err != nil {
		t.Fatalf("check: %v", err)
	}
	got, _ := st.GetOrder(order.ID)
	if !got.Products[0].IsChecked {
		t.Fatalf("product should be checked")
	}

	if err := st.UpdateProductChecked("no-such-id", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestImageDelete(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	dataset, _ := st.CreateDataset("画像テスト")
	order := &model.Order{DatasetID: dataset.ID, OrderNumber: "A1"}
	if err := st.InsertOrder(order); err != nil {
		t.Fatalf("insert order: %v", err)
	}

	img := &model.OrderImage{OrderID: order.ID, URL: "http://img/x.jpg", ImageType: model.ImagePredicted}
	if err := st.InsertImage(img); err != nil {
		t.Fatalf("insert image: %v", err)
	}

	if err := st.DeleteImage(img.ID); err != nil {
		t.Fatalf("delete image: %v", err)
	}
	if _, err := st.GetImage(img.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, err := st.GetSetting(SettingSelectedDataset); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}

	if err := st.SetSetting(SettingSelectedDataset, "ds-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, err := st.GetSetting(SettingSelectedDataset); err != nil || v != "ds-1" {
		t.Fatalf("get=%q/%v", v, err)
	}

	// 覆盖写
	if err := st.SetSetting(SettingSelectedDataset, "ds-2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _ := st.GetSetting(SettingSelectedDataset); v != "ds-2" {
		t.Fatalf("get=%q, want ds-2", v)
	}
}

func TestListDatasets_NewestFirst(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, err := st.CreateDataset("先"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreateDataset("後"); err != nil {
		t.Fatalf("create: %v", err)
	}

	datasets, err := st.ListDatasets()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(datasets) != 2 {
		t.Fatalf("datasets=%d, want 2", len(datasets))
	}
}
