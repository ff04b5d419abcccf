package model

import (
	"time"

	"gorm.io/datatypes"
)

// AppStateID 单行表的固定主键
const AppStateID = 1

// AppState 数据快照表，对应 app_state（单行，整体覆盖写入）
type AppState struct {
	ID        int            `gorm:"type:smallint;primaryKey"           json:"id"`
	Courses   datatypes.JSON `gorm:"type:jsonb;not null"                json:"courses"`
	Sessions  datatypes.JSON `gorm:"type:jsonb;not null"                json:"sessions"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AppState) TableName() string { return "app_state" }
