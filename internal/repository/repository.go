package repository

// Repository 所有 Repository 的聚合入口
type Repository struct {
	State StateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(state StateRepository) *Repository {
	return &Repository{
		State: state,
	}
}
