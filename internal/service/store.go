package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"lesson-tracker/config"
	"lesson-tracker/internal/engine"
	"lesson-tracker/internal/model"
	"lesson-tracker/internal/repository"
	"lesson-tracker/pkg/debounce"
	pkgerrors "lesson-tracker/pkg/errors"
)

// Store 持有内存中的 {courses, sessions} 快照，是唯一的写入方。
//
// 规则：
//   - 所有修改在写锁内完成：读取当前切片 → 引擎纯函数变换 → 整体替换
//   - 引擎不会原地修改入参，已发布的切片视为只读，读操作可直接共享
//   - 每次修改后防抖保存完整快照；保存失败只记日志，内存状态仍然有效
type Store struct {
	mu    sync.RWMutex
	state model.State

	repo        repository.StateRepository
	saver       *debounce.Debouncer
	saveTimeout time.Duration
	logger      *zap.Logger

	now   func() time.Time
	newID engine.IDFunc
}

// StoreOption Store 可选项
type StoreOption func(*Store)

// WithClock 指定时钟，用于计算"今天"
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDFunc 指定 ID 生成器
func WithIDFunc(newID engine.IDFunc) StoreOption {
	return func(s *Store) { s.newID = newID }
}

// NewStore 创建 Store，初始为空快照；需调用 Load 载入持久化数据
func NewStore(repo *repository.Repository, cfg *config.StoreConfig, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		state:       *model.EmptyState(),
		repo:        repo.State,
		saveTimeout: cfg.SaveTimeout,
		logger:      logger,
		now:         time.Now,
		newID:       engine.NewID,
	}
	if s.saveTimeout <= 0 {
		s.saveTimeout = 10 * time.Second
	}
	for _, opt := range opts {
		opt(s)
	}
	s.saver = debounce.New(cfg.SaveDebounce, s.persist)
	return s
}

// Load 启动时载入一次快照。
// 后端无数据时以空快照初始化并立即写回；其他错误记录日志后以空快照继续。
func (s *Store) Load(ctx context.Context) {
	st, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, pkgerrors.ErrStateNotFound):
		s.logger.Info("数据快照不存在，初始化为空")
		empty := model.EmptyState()
		if err := s.repo.Save(ctx, empty); err != nil {
			s.logger.Error("初始化数据快照失败", zap.Error(err))
		}
		st = empty
	case err != nil:
		s.logger.Error("载入数据快照失败，以空数据继续", zap.Error(err))
		st = model.EmptyState()
	}
	st.Normalize()

	s.mu.Lock()
	s.state = *st
	s.mu.Unlock()

	s.logger.Info("数据快照已载入",
		zap.Int("courses", len(st.Courses)),
		zap.Int("sessions", len(st.Sessions)),
	)
}

// Snapshot 返回当前快照（切片只读共享）
func (s *Store) Snapshot() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Today 当前日期 YYYY-MM-DD
func (s *Store) Today() string {
	return engine.Today(s.now())
}

// Update 在写锁内执行变换；fn 返回 true 表示快照已变化，随后安排一次防抖保存。
// fn 必须返回新切片而不是原地修改 st 中的元素。
func (s *Store) Update(fn func(st *model.State) bool) {
	s.mu.Lock()
	next := s.state
	changed := fn(&next)
	if changed {
		next.Normalize()
		s.state = next
	}
	s.mu.Unlock()

	if changed {
		s.saver.Schedule()
	}
}

// Flush 立即执行挂起的保存
func (s *Store) Flush() {
	s.saver.Flush()
}

// Close 执行挂起的保存并停止后续保存
func (s *Store) Close() {
	s.saver.Stop()
}

func (s *Store) persist() {
	st := s.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, &st); err != nil {
		s.logger.Error("保存数据快照失败", zap.Error(err))
		return
	}
	s.logger.Debug("数据快照已保存",
		zap.Int("courses", len(st.Courses)),
		zap.Int("sessions", len(st.Sessions)),
	)
}
