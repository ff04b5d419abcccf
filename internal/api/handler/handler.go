package handler

import "lesson-tracker/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course  *CourseHandler
	Session *SessionHandler
	Stats   *StatsHandler
	Data    *DataHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:  NewCourseHandler(svc.Course),
		Session: NewSessionHandler(svc.Session),
		Stats:   NewStatsHandler(svc.Stats),
		Data:    NewDataHandler(svc.Data),
		Export:  NewExportHandler(svc.Export),
	}
}
