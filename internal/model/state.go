package model

// State 完整数据快照，与外部存储的 JSON 结构一致
type State struct {
	Courses  []Course  `json:"courses"`
	Sessions []Session `json:"sessions"`
}

// EmptyState 空快照（存储不存在时的初始值）
func EmptyState() *State {
	return &State{Courses: []Course{}, Sessions: []Session{}}
}

// Normalize 将 nil 切片替换为空切片，保证序列化为 [] 而非 null
func (s *State) Normalize() {
	if s.Courses == nil {
		s.Courses = []Course{}
	}
	if s.Sessions == nil {
		s.Sessions = []Session{}
	}
}
