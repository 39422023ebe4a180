// Package storage 提供渲染产物的本地文件存储
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage 本地目录存储，每个已渲染的演示文稿对应一个以 ID 命名的文件
type LocalStorage struct {
	dir string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

// Save 写入渲染产物并返回文件路径
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Path 返回文件路径，不保证存在
func (s *LocalStorage) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Exists 判断文件是否存在
func (s *LocalStorage) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove 删除文件，文件不存在时视为成功
func (s *LocalStorage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
