package repository

import (
	"context"

	"lesson-tracker/internal/model"
)

// StateRepository 数据快照存取接口
//
// 读写都是整体操作：Load 返回完整快照，Save 整体覆盖，无增量、无合并、无并发版本号。
// 后端中尚无数据时 Load 返回 pkg/errors.ErrStateNotFound。
type StateRepository interface {
	Load(ctx context.Context) (*model.State, error)
	Save(ctx context.Context, state *model.State) error
}
