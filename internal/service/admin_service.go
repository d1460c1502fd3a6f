package service

import (
	"storeboost/internal/pkg/logger"
)

// IAdminService backs the operational admin endpoints.
type IAdminService interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	logger logger.ILogger
}

func NewAdminService(log logger.ILogger) IAdminService {
	return &adminService{logger: log}
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	return s.logger.GetLogById(id)
}
