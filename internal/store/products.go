package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
)

// BatchInsertProducts 批量插入订单的商品
// 单事务执行，任一条失败则整组回滚
func (s *Store) BatchInsertProducts(products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO products (
			id, order_id, product_code, product_name, category,
			quantity, lx, ly, lz
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := stmt.Exec(
			p.ID, p.OrderID, p.ProductCode, p.ProductName, p.Category,
			p.Quantity, p.Lx, p.Ly, p.Lz,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListProducts 按插入顺序列出订单的商品
func (s *Store) ListProducts(orderID string) ([]*model.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, order_id, product_code, product_name, category,
			quantity, lx, ly, lz, is_checked, created_at
		FROM products WHERE order_id = ? ORDER BY rowid ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var out []*model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.OrderID, &p.ProductCode, &p.ProductName, &p.Category,
			&p.Quantity, &p.Lx, &p.Ly, &p.Lz, &p.IsChecked, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// UpdateProductChecked 更新商品拣货确认状态
func (s *Store) UpdateProductChecked(id string, checked bool) error {
	res, err := s.db.Exec(
		"UPDATE products SET is_checked = ? WHERE id = ?", checked, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
