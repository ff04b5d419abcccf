package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lesson-tracker/internal/model"
	pkgerrors "lesson-tracker/pkg/errors"
	"lesson-tracker/pkg/redis"
)

type redisStateRepo struct {
	rdb *redis.Client
	key string
}

// NewRedisStateRepo 创建基于 Redis 单键的 StateRepository
func NewRedisStateRepo(rdb *redis.Client, key string) StateRepository {
	return &redisStateRepo{rdb: rdb, key: key}
}

func (r *redisStateRepo) Load(ctx context.Context) (*model.State, error) {
	data, err := r.rdb.GetBytes(ctx, r.key)
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, pkgerrors.ErrStateNotFound
		}
		return nil, err
	}

	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("解析数据快照失败: %w", err)
	}
	state.Normalize()
	return &state, nil
}

func (r *redisStateRepo) Save(ctx context.Context, state *model.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化数据快照失败: %w", err)
	}
	return r.rdb.SetBytes(ctx, r.key, data)
}
