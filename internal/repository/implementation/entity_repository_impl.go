// Implementation of EntityRepository over the multiplexed entity table.
package implementation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"

	"storeboost/internal/entity"
	"storeboost/internal/mapper"
	"storeboost/internal/model"
	"storeboost/internal/repository/contract"
	"storeboost/internal/repository/scope"
	"storeboost/internal/settings"
)

const (
	defaultOrderBy  = "priority"
	defaultPriority = 10
	defaultLimit    = 100
)

// orderableColumns is the fixed allow-list for dynamic ordering. The
// column name is interpolated into the ORDER BY clause, so anything
// outside this set falls back to priority; this is a safety control
// against identifier injection, not incidental validation.
var orderableColumns = map[string]struct{}{
	"id":         {},
	"name":       {},
	"status":     {},
	"priority":   {},
	"created_at": {},
	"updated_at": {},
}

func normalizeOrderBy(orderBy string) string {
	if _, ok := orderableColumns[orderBy]; ok {
		return orderBy
	}
	return defaultOrderBy
}

func normalizeOrder(order string) string {
	if strings.EqualFold(order, "DESC") {
		return "DESC"
	}
	return "ASC"
}

type EntityRepositoryImpl struct {
	db     *gorm.DB
	scope  scope.Scope
	mapper *mapper.EntityMapper
}

// NewEntityRepository binds a repository to one (feature id, entity type)
// collection. Collaborators never widen the scope afterwards.
func NewEntityRepository(db *gorm.DB, s scope.Scope) contract.EntityRepository {
	return &EntityRepositoryImpl{
		db:     db,
		scope:  s,
		mapper: mapper.NewEntityMapper(),
	}
}

func (r *EntityRepositoryImpl) Scope() scope.Scope {
	return r.scope
}

func (r *EntityRepositoryImpl) scoped(ctx context.Context) *gorm.DB {
	return r.scope.Apply(r.db.WithContext(ctx).Model(&model.Entity{}))
}

func (r *EntityRepositoryImpl) Find(ctx context.Context, id int64) (*entity.Entity, error) {
	var row model.Entity
	err := r.scoped(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&row), nil
}

func (r *EntityRepositoryImpl) GetAll(ctx context.Context, opts contract.ListOptions) ([]*entity.Entity, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := r.scoped(ctx)
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	query = query.Order(fmt.Sprintf("%s %s", normalizeOrderBy(opts.OrderBy), normalizeOrder(opts.Order)))

	var rows []*model.Entity
	if err := query.Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *EntityRepositoryImpl) GetActive(ctx context.Context) ([]*entity.Entity, error) {
	return r.GetAll(ctx, contract.ListOptions{Status: string(entity.StatusActive)})
}

func (r *EntityRepositoryImpl) Create(ctx context.Context, data contract.CreateData) (int64, error) {
	priority := defaultPriority
	if data.Priority != nil {
		priority = *data.Priority
	}

	encoded, err := settings.Encode(settings.Sanitize(data.Settings))
	if err != nil {
		return 0, err
	}

	row := model.Entity{
		FeatureId:  r.scope.FeatureId,
		EntityType: r.scope.EntityType,
		Name:       settings.SanitizeText(data.Name),
		Settings:   encoded,
		Status:     string(entity.CoerceStatus(data.Status)),
		Priority:   priority,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.Id, nil
}

func (r *EntityRepositoryImpl) Update(ctx context.Context, id int64, data contract.UpdateData) (bool, error) {
	// Partial update: only supplied fields are touched, but updated_at is
	// refreshed unconditionally.
	updates := map[string]any{"updated_at": time.Now()}
	if data.Name != nil {
		updates["name"] = settings.SanitizeText(*data.Name)
	}
	if data.Settings != nil {
		encoded, err := settings.Encode(settings.Sanitize(data.Settings))
		if err != nil {
			return false, err
		}
		updates["settings"] = encoded
	}
	if data.Status != nil {
		updates["status"] = string(entity.CoerceStatus(*data.Status))
	}
	if data.Priority != nil {
		updates["priority"] = *data.Priority
	}

	result := r.scoped(ctx).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *EntityRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.scope.Apply(r.db.WithContext(ctx)).Where("id = ?", id).Delete(&model.Entity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *EntityRepositoryImpl) Count(ctx context.Context, status string) (int64, error) {
	query := r.scoped(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBySetting filters active entities in memory by exact equality on a
// dotted settings path. Settings is an opaque blob, not indexed columns,
// so this deliberately stays out of the query layer.
func (r *EntityRepositoryImpl) FindBySetting(ctx context.Context, key string, value any) ([]*entity.Entity, error) {
	active, err := r.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*entity.Entity, 0)
	for _, e := range active {
		if found, ok := settings.Lookup(e.Settings, key); ok && settingEquals(found, value) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// settingEquals compares a decoded settings value with a caller-supplied
// one. Decoded numbers are float64, so numeric inputs are folded before
// comparison.
func settingEquals(stored, wanted any) bool {
	if sf, ok := toFloat(stored); ok {
		if wf, wok := toFloat(wanted); wok {
			return sf == wf
		}
		return false
	}
	return reflect.DeepEqual(stored, wanted)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (r *EntityRepositoryImpl) BulkUpdateStatus(ctx context.Context, ids []int64, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.scoped(ctx).Where("id IN ?", ids).Updates(map[string]any{
		"status":     string(entity.CoerceStatus(status)),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *EntityRepositoryImpl) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.scope.Apply(r.db.WithContext(ctx)).Where("id IN ?", ids).Delete(&model.Entity{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Reorder issues one write per id with no surrounding transaction. A
// failure mid-loop leaves the collection partially reordered; the first
// storage error is reported after all writes were attempted.
func (r *EntityRepositoryImpl) Reorder(ctx context.Context, priorities map[int64]int) error {
	var firstErr error
	for id, priority := range priorities {
		result := r.scoped(ctx).Where("id = ?", id).Updates(map[string]any{
			"priority":   priority,
			"updated_at": time.Now(),
		})
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
	}
	return firstErr
}

func (r *EntityRepositoryImpl) Duplicate(ctx context.Context, id int64) (int64, error) {
	source, err := r.Find(ctx, id)
	if err != nil {
		return 0, err
	}
	if source == nil {
		return 0, fmt.Errorf("entity %d not found in scope %s/%s", id, r.scope.FeatureId, r.scope.EntityType)
	}

	priority := source.Priority + 1
	status := string(entity.StatusInactive)
	return r.Create(ctx, contract.CreateData{
		Name:     source.Name + " (Copy)",
		Settings: settings.Clone(source.Settings),
		Status:   status,
		Priority: &priority,
	})
}
