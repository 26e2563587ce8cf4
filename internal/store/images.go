package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
)

// InsertImage 插入订单照片记录
func (s *Store) InsertImage(img *model.OrderImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	if img.ImageType == "" {
		img.ImageType = model.ImageActual
	}

	_, err := s.db.Exec(
		"INSERT INTO images (id, order_id, url, image_type) VALUES (?, ?, ?, ?)",
		img.ID, img.OrderID, img.URL, img.ImageType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}

// GetImage 获取单条照片记录
func (s *Store) GetImage(id string) (*model.OrderImage, error) {
	var img model.OrderImage
	err := s.db.QueryRow(
		"SELECT id, order_id, url, image_type, created_at FROM images WHERE id = ?", id,
	).Scan(&img.ID, &img.OrderID, &img.URL, &img.ImageType, &img.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query image: %w", err)
	}
	return &img, nil
}

// ListImages 按拍摄顺序列出订单的照片
func (s *Store) ListImages(orderID string) ([]*model.OrderImage, error) {
	rows, err := s.db.Query(
		"SELECT id, order_id, url, image_type, created_at FROM images WHERE order_id = ? ORDER BY rowid ASC",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var out []*model.OrderImage
	for rows.Next() {
		var img model.OrderImage
		if err := rows.Scan(&img.ID, &img.OrderID, &img.URL, &img.ImageType, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		out = append(out, &img)
	}
	return out, rows.Err()
}

// DeleteImage 删除照片记录
func (s *Store) DeleteImage(id string) error {
	res, err := s.db.Exec("DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
