package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"lesson-tracker/internal/model"
	pkgerrors "lesson-tracker/pkg/errors"
)

type fileStateRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileStateRepo 创建基于 JSON 文件的 StateRepository（默认后端）
func NewFileStateRepo(path string) StateRepository {
	return &fileStateRepo{path: path}
}

func (r *fileStateRepo) Load(_ context.Context) (*model.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pkgerrors.ErrStateNotFound
		}
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}

	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("解析数据文件失败: %w", err)
	}
	state.Normalize()
	return &state, nil
}

// Save 先写临时文件再重命名，避免写入中途崩溃留下半个文件
func (r *fileStateRepo) Save(_ context.Context, state *model.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化数据失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("写入数据文件失败: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("替换数据文件失败: %w", err)
	}
	return nil
}
