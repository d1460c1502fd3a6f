// Service exposing scoped repository operations to the REST surface. The
// scope is validated against the registry before any repository is built,
// so collaborators cannot address collections no feature declares.
package service

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"storeboost/internal/dto"
	"storeboost/internal/entity"
	"storeboost/internal/pkg/logger"
	"storeboost/internal/pkg/serverutils"
	"storeboost/internal/repository/contract"
	"storeboost/internal/repository/implementation"
	"storeboost/internal/repository/scope"
	"storeboost/internal/settings"
	"storeboost/pkg/events"
	"storeboost/pkg/feature"
)

type IEntityService interface {
	GetAll(ctx context.Context, featureId, entityType string, opts contract.ListOptions) ([]dto.EntityResponse, error)
	Show(ctx context.Context, featureId, entityType string, id int64) (*dto.EntityResponse, error)
	Create(ctx context.Context, featureId, entityType string, req *dto.CreateEntityRequest) (*dto.EntityResponse, error)
	Update(ctx context.Context, featureId, entityType string, id int64, req *dto.UpdateEntityRequest) (*dto.EntityResponse, error)
	Delete(ctx context.Context, featureId, entityType string, id int64) error
	Count(ctx context.Context, featureId, entityType, status string) (int64, error)
	BulkUpdateStatus(ctx context.Context, featureId, entityType string, req *dto.BulkStatusRequest) (int64, error)
	BulkDelete(ctx context.Context, featureId, entityType string, req *dto.BulkDeleteRequest) (int64, error)
	Reorder(ctx context.Context, featureId, entityType string, req *dto.ReorderRequest) error
	Duplicate(ctx context.Context, featureId, entityType string, id int64) (*dto.EntityResponse, error)
}

type entityService struct {
	db        *gorm.DB
	registry  *feature.Registry
	publisher IPublisherService
	logger    logger.ILogger
}

func NewEntityService(db *gorm.DB, registry *feature.Registry, publisher IPublisherService, log logger.ILogger) IEntityService {
	return &entityService{
		db:        db,
		registry:  registry,
		publisher: publisher,
		logger:    log,
	}
}

func (s *entityService) repository(featureId, entityType string) (contract.EntityRepository, error) {
	f, ok := s.registry.Get(featureId)
	if !ok {
		return nil, serverutils.NotFound("Feature not found")
	}
	declared := false
	for _, t := range f.EntityTypes() {
		if t == entityType {
			declared = true
			break
		}
	}
	if !declared {
		return nil, serverutils.NotFound("Unknown entity type for feature")
	}
	return implementation.NewEntityRepository(s.db, scope.New(featureId, entityType)), nil
}

func (s *entityService) GetAll(ctx context.Context, featureId, entityType string, opts contract.ListOptions) ([]dto.EntityResponse, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return nil, err
	}
	entities, err := repo.GetAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := make([]dto.EntityResponse, 0, len(entities))
	for _, e := range entities {
		result = append(result, toEntityResponse(e))
	}
	return result, nil
}

func (s *entityService) Show(ctx context.Context, featureId, entityType string, id int64) (*dto.EntityResponse, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return nil, err
	}
	e, err := repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, serverutils.NotFound("Entity not found")
	}
	res := toEntityResponse(e)
	return &res, nil
}

func (s *entityService) Create(ctx context.Context, featureId, entityType string, req *dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return nil, err
	}

	id, err := repo.Create(ctx, contract.CreateData{
		Name:     req.Name,
		Settings: settings.Map(req.Settings),
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeEntityCreated, map[string]interface{}{
		"feature_id":  featureId,
		"entity_type": entityType,
		"entity_id":   id,
	}))
	return s.Show(ctx, featureId, entityType, id)
}

func (s *entityService) Update(ctx context.Context, featureId, entityType string, id int64, req *dto.UpdateEntityRequest) (*dto.EntityResponse, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return nil, err
	}

	affected, err := repo.Update(ctx, id, contract.UpdateData{
		Name:     req.Name,
		Settings: settings.Map(req.Settings),
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		return nil, err
	}
	if !affected {
		return nil, serverutils.NotFound("Entity not found")
	}

	s.publisher.Publish(ctx, events.New(events.TypeEntityUpdated, map[string]interface{}{
		"feature_id":  featureId,
		"entity_type": entityType,
		"entity_id":   id,
	}))
	return s.Show(ctx, featureId, entityType, id)
}

func (s *entityService) Delete(ctx context.Context, featureId, entityType string, id int64) error {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return err
	}

	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return serverutils.NotFound("Entity not found")
	}

	s.publisher.Publish(ctx, events.New(events.TypeEntityDeleted, map[string]interface{}{
		"feature_id":  featureId,
		"entity_type": entityType,
		"entity_id":   id,
	}))
	return nil
}

func (s *entityService) Count(ctx context.Context, featureId, entityType, status string) (int64, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx, status)
}

func (s *entityService) BulkUpdateStatus(ctx context.Context, featureId, entityType string, req *dto.BulkStatusRequest) (int64, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return 0, err
	}
	affected, err := repo.BulkUpdateStatus(ctx, req.Ids, req.Status)
	if err != nil {
		return 0, err
	}
	s.logger.Info("entity", "Bulk status update", map[string]interface{}{
		"feature_id":  featureId,
		"entity_type": entityType,
		"requested":   len(req.Ids),
		"affected":    affected,
	})
	return affected, nil
}

func (s *entityService) BulkDelete(ctx context.Context, featureId, entityType string, req *dto.BulkDeleteRequest) (int64, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return 0, err
	}
	affected, err := repo.BulkDelete(ctx, req.Ids)
	if err != nil {
		return 0, err
	}
	s.logger.Info("entity", "Bulk delete", map[string]interface{}{
		"feature_id":  featureId,
		"entity_type": entityType,
		"requested":   len(req.Ids),
		"affected":    affected,
	})
	return affected, nil
}

func (s *entityService) Reorder(ctx context.Context, featureId, entityType string, req *dto.ReorderRequest) error {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return err
	}

	priorities := make(map[int64]int, len(req.Priorities))
	for rawId, priority := range req.Priorities {
		id, err := strconv.ParseInt(rawId, 10, 64)
		if err != nil {
			return serverutils.BadRequest("Invalid entity id in priorities: " + rawId)
		}
		priorities[id] = priority
	}
	return repo.Reorder(ctx, priorities)
}

func (s *entityService) Duplicate(ctx context.Context, featureId, entityType string, id int64) (*dto.EntityResponse, error) {
	repo, err := s.repository(featureId, entityType)
	if err != nil {
		return nil, err
	}

	source, err := repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, serverutils.NotFound("Entity not found")
	}

	copyId, err := repo.Duplicate(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeEntityDuplicated, map[string]interface{}{
		"feature_id":  featureId,
		"entity_type": entityType,
		"source_id":   id,
		"entity_id":   copyId,
	}))
	return s.Show(ctx, featureId, entityType, copyId)
}

func toEntityResponse(e *entity.Entity) dto.EntityResponse {
	return dto.EntityResponse{
		Id:        e.Id,
		Name:      e.Name,
		Settings:  map[string]interface{}(e.Settings),
		Status:    string(e.Status),
		Priority:  e.Priority,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
