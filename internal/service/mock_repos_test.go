package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"lesson-tracker/config"
	"lesson-tracker/internal/model"
	"lesson-tracker/internal/repository"
	pkgerrors "lesson-tracker/pkg/errors"
)

// ── Mock StateRepository ──

type mockStateRepo struct {
	mu      sync.Mutex
	state   *model.State
	saves   int
	loadErr error
	saveErr error
}

func newMockStateRepo(state *model.State) *mockStateRepo {
	return &mockStateRepo{state: state}
}

func (m *mockStateRepo) Load(_ context.Context) (*model.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.state == nil {
		return nil, pkgerrors.ErrStateNotFound
	}
	cp := *m.state
	return &cp, nil
}

func (m *mockStateRepo) Save(_ context.Context, state *model.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *state
	m.state = &cp
	return nil
}

func (m *mockStateRepo) saved() (*model.State, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.saves
}

// ── 测试辅助 ──

// testToday 固定"今天"：2026-04-01（周三）
var testToday = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "id-" + strconv.Itoa(n)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Driver:       config.StoreDriverFile,
			SaveDebounce: time.Hour, // 测试中只通过 Flush 落盘
			SaveTimeout:  time.Second,
		},
	}
}

// setupTestService 以给定初始快照创建 Service 聚合并完成载入
func setupTestService(initial *model.State) (*Service, *mockStateRepo) {
	repo := newMockStateRepo(initial)
	svc := NewService(
		testConfig(),
		repository.NewRepository(repo),
		zap.NewNop(),
		WithClock(func() time.Time { return testToday }),
		WithIDFunc(seqIDs()),
	)
	svc.Load(context.Background())
	return svc, repo
}
