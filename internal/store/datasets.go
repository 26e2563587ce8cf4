package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/model"
)

// CreateDataset 创建数据集
func (s *Store) CreateDataset(name string) (*model.Dataset, error) {
	id := uuid.New().String()

	if _, err := s.db.Exec(
		"INSERT INTO datasets (id, name) VALUES (?, ?)", id, name,
	); err != nil {
		return nil, fmt.Errorf("failed to insert dataset: %w", err)
	}

	return s.GetDataset(id)
}

// GetDataset 获取单个数据集
func (s *Store) GetDataset(id string) (*model.Dataset, error) {
	var d model.Dataset
	err := s.db.QueryRow(
		"SELECT id, name, created_at FROM datasets WHERE id = ?", id,
	).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	return &d, nil
}

// ListDatasets 列出所有数据集（按创建时间倒序）
func (s *Store) ListDatasets() ([]*model.Dataset, error) {
	rows, err := s.db.Query(
		"SELECT id, name, created_at FROM datasets ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var out []*model.Dataset
	for rows.Next() {
		var d model.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// DeleteDataset 删除数据集及其级联数据
func (s *Store) DeleteDataset(id string) error {
	res, err := s.db.Exec("DELETE FROM datasets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
