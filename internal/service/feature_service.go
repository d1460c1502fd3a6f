// Service for feature catalog operations: listing, toggling, settings.
package service

import (
	"context"

	"storeboost/internal/dto"
	"storeboost/internal/pkg/logger"
	"storeboost/internal/pkg/serverutils"
	"storeboost/internal/settings"
	"storeboost/pkg/events"
	"storeboost/pkg/feature"
)

type IFeatureService interface {
	GetAll(ctx context.Context) []dto.FeatureResponse
	Show(ctx context.Context, id string) (*dto.FeatureResponse, error)
	Enable(ctx context.Context, id string) error
	Disable(ctx context.Context, id string) error
	UpdateSettings(ctx context.Context, id string, req *dto.UpdateFeatureSettingsRequest) (*dto.FeatureResponse, error)
}

type featureService struct {
	registry  *feature.Registry
	publisher IPublisherService
	logger    logger.ILogger
}

func NewFeatureService(registry *feature.Registry, publisher IPublisherService, log logger.ILogger) IFeatureService {
	return &featureService{
		registry:  registry,
		publisher: publisher,
		logger:    log,
	}
}

func (s *featureService) GetAll(ctx context.Context) []dto.FeatureResponse {
	all := s.registry.All()
	result := make([]dto.FeatureResponse, 0, len(all))
	for _, f := range all {
		result = append(result, toFeatureResponse(ctx, f, false))
	}
	return result
}

func (s *featureService) Show(ctx context.Context, id string) (*dto.FeatureResponse, error) {
	f, ok := s.registry.Get(id)
	if !ok {
		return nil, serverutils.NotFound("Feature not found")
	}
	res := toFeatureResponse(ctx, f, true)
	return &res, nil
}

func (s *featureService) Enable(ctx context.Context, id string) error {
	f, ok := s.registry.Get(id)
	if !ok {
		return serverutils.NotFound("Feature not found")
	}
	if err := f.Enable(ctx); err != nil {
		return err
	}

	s.logger.Info("feature", "Feature enabled", map[string]interface{}{"feature_id": id})
	s.publisher.Publish(ctx, events.New(events.TypeFeatureEnabled, map[string]interface{}{
		"feature_id": id,
	}))
	return nil
}

func (s *featureService) Disable(ctx context.Context, id string) error {
	f, ok := s.registry.Get(id)
	if !ok {
		return serverutils.NotFound("Feature not found")
	}
	if err := f.Disable(ctx); err != nil {
		return err
	}

	s.logger.Info("feature", "Feature disabled", map[string]interface{}{"feature_id": id})
	s.publisher.Publish(ctx, events.New(events.TypeFeatureDisabled, map[string]interface{}{
		"feature_id": id,
	}))
	return nil
}

func (s *featureService) UpdateSettings(ctx context.Context, id string, req *dto.UpdateFeatureSettingsRequest) (*dto.FeatureResponse, error) {
	f, ok := s.registry.Get(id)
	if !ok {
		return nil, serverutils.NotFound("Feature not found")
	}
	if err := f.UpdateSettings(ctx, settings.Map(req.Settings)); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeFeatureSettingsUpdated, map[string]interface{}{
		"feature_id": id,
	}))

	res := toFeatureResponse(ctx, f, true)
	return &res, nil
}

func toFeatureResponse(ctx context.Context, f feature.Feature, withSettings bool) dto.FeatureResponse {
	res := dto.FeatureResponse{
		Id:          f.Id(),
		Name:        f.Name(),
		Description: f.Description(),
		Category:    f.Category(),
		Icon:        f.Icon(),
		Priority:    f.Priority(),
		Enabled:     f.IsEnabled(ctx),
		EntityTypes: f.EntityTypes(),
	}
	if withSettings {
		res.Settings = map[string]interface{}(f.Settings(ctx))
	}
	return res
}
