package store

import "fmt"

// SettingSelectedDataset 当前选中数据集的设置键
// 原型期该偏好保存在各客户端本地，迁移为服务端统一保存
const SettingSelectedDataset = "selected_dataset"

// GetSetting 获取设置项
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting 设置设置项
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
