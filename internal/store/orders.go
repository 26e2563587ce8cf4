package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
)

const orderColumns = `id, dataset_id, order_number, total_quantity, actual_size,
	predicted_size, fill_rate, type, recorder, poc_packing_size, memo,
	created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.DatasetID, &o.OrderNumber, &o.TotalQuantity, &o.ActualSize,
		&o.PredictedSize, &o.FillRate, &o.Type, &o.Recorder, &o.PocPackingSize,
		&o.Memo, &o.CreatedAt, &o.UpdatedAt,
	)
}

// InsertOrder 插入单个订单，返回生成的 ID
func (s *Store) InsertOrder(o *model.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	_, err := s.db.Exec(`
		INSERT INTO orders (
			id, dataset_id, order_number, total_quantity,
			actual_size, predicted_size, fill_rate, type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID, o.DatasetID, o.OrderNumber, o.TotalQuantity,
		o.ActualSize, o.PredictedSize, o.FillRate, o.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrderByNumber 按数据集与订单号查询订单（含商品和照片）
// 查无此单时返回 ErrNotFound
func (s *Store) GetOrderByNumber(datasetID, orderNumber string) (*model.OrderWithDetails, error) {
	var o model.Order
	err := scanOrder(s.db.QueryRow(
		"SELECT "+orderColumns+" FROM orders WHERE dataset_id = ? AND order_number = ?",
		datasetID, orderNumber,
	), &o)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return s.attachDetails(&o)
}

// GetOrder 按 ID 查询订单（含商品和照片）
func (s *Store) GetOrder(id string) (*model.OrderWithDetails, error) {
	var o model.Order
	err := scanOrder(s.db.QueryRow(
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", id,
	), &o)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return s.attachDetails(&o)
}

// OrderQueryOptions 订单列表查询选项
type OrderQueryOptions struct {
	DatasetID string
	Limit     int
	Offset    int
}

// CountOrders 统计数据集内的订单数
func (s *Store) CountOrders(datasetID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(1) FROM orders WHERE dataset_id = ?", datasetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// ListOrders 按订单号升序列出数据集内的订单（含商品和照片）
// Limit <= 0 时返回全部
func (s *Store) ListOrders(opts OrderQueryOptions) ([]*model.OrderWithDetails, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE dataset_id = ? ORDER BY order_number ASC"
	args := []interface{}{opts.DatasetID}

	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	out := make([]*model.OrderWithDetails, 0, len(orders))
	for _, o := range orders {
		detailed, err := s.attachDetails(o)
		if err != nil {
			return nil, err
		}
		out = append(out, detailed)
	}
	return out, nil
}

// attachDetails 补齐订单的商品与照片
func (s *Store) attachDetails(o *model.Order) (*model.OrderWithDetails, error) {
	products, err := s.ListProducts(o.ID)
	if err != nil {
		return nil, err
	}
	images, err := s.ListImages(o.ID)
	if err != nil {
		return nil, err
	}
	return &model.OrderWithDetails{
		Order:    *o,
		Products: products,
		Images:   images,
	}, nil
}

// UpdateOrderRecorder 更新记入者
func (s *Store) UpdateOrderRecorder(id, recorder string) error {
	return s.updateOrderField(id, "recorder", recorder)
}

// UpdateOrderPackingSize 更新 PoC 梱包尺寸
func (s *Store) UpdateOrderPackingSize(id, size string) error {
	return s.updateOrderField(id, "poc_packing_size", size)
}

// UpdateOrderMemo 更新备注
func (s *Store) UpdateOrderMemo(id, memo string) error {
	return s.updateOrderField(id, "memo", memo)
}

func (s *Store) updateOrderField(id, column, value string) error {
	res, err := s.db.Exec(
		"UPDATE orders SET "+column+" = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		value, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
