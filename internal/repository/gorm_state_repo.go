package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lesson-tracker/internal/model"
	pkgerrors "lesson-tracker/pkg/errors"
)

type gormStateRepo struct {
	db *gorm.DB
}

// NewGormStateRepo 创建基于 PostgreSQL 单行表 app_state 的 StateRepository
func NewGormStateRepo(db *gorm.DB) StateRepository {
	return &gormStateRepo{db: db}
}

func (r *gormStateRepo) Load(ctx context.Context) (*model.State, error) {
	var row model.AppState
	err := r.db.WithContext(ctx).
		Where("id = ?", model.AppStateID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrStateNotFound
		}
		return nil, err
	}

	var state model.State
	if err := json.Unmarshal(row.Courses, &state.Courses); err != nil {
		return nil, fmt.Errorf("解析课程数据失败: %w", err)
	}
	if err := json.Unmarshal(row.Sessions, &state.Sessions); err != nil {
		return nil, fmt.Errorf("解析课次数据失败: %w", err)
	}
	state.Normalize()
	return &state, nil
}

func (r *gormStateRepo) Save(ctx context.Context, state *model.State) error {
	courses, err := json.Marshal(state.Courses)
	if err != nil {
		return fmt.Errorf("序列化课程数据失败: %w", err)
	}
	sessions, err := json.Marshal(state.Sessions)
	if err != nil {
		return fmt.Errorf("序列化课次数据失败: %w", err)
	}

	row := model.AppState{
		ID:       model.AppStateID,
		Courses:  courses,
		Sessions: sessions,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"courses":    row.Courses,
				"sessions":   row.Sessions,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&row).Error
}
