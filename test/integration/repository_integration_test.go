package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storeboost/internal/repository/contract"
	"storeboost/internal/repository/implementation"
	"storeboost/internal/repository/scope"
	"storeboost/internal/schema"
	"storeboost/internal/settings"
	"storeboost/pkg/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, schema.NewManager(db).EnsureTables())
	return db
}

// testScope builds a unique scope per test so runs never collide.
func testScope(t *testing.T, entityType string) scope.Scope {
	t.Helper()
	return scope.New("it_"+uuid.New().String()[:8], entityType)
}

func cleanupScope(t *testing.T, db *gorm.DB, s scope.Scope) {
	t.Helper()
	t.Cleanup(func() {
		db.Exec("DELETE FROM storeboost_entities WHERE feature_id = ? AND entity_type = ?",
			s.FeatureId, s.EntityType)
	})
}

func TestEntityLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bundle")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	priority := 5
	id, err := repo.Create(ctx, contract.CreateData{
		Name:     "Bundle A",
		Settings: settings.Map{"discount": 10},
		Priority: &priority,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Bundle A", found.Name)
	assert.Equal(t, "active", string(found.Status))
	assert.Equal(t, 5, found.Priority)
	assert.Equal(t, float64(10), found.Settings["discount"])

	draft := "draft"
	affected, err := repo.Update(ctx, id, contract.UpdateData{Status: &draft})
	require.NoError(t, err)
	assert.True(t, affected)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	for _, e := range active {
		assert.NotEqual(t, id, e.Id)
	}

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := repo.Find(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSettingsRoundTripSanitized(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bump")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	id, err := repo.Create(ctx, contract.CreateData{
		Name: "Gift wrap",
		Settings: settings.Map{
			"Display Position": "<b>below_cart</b>",
			"discount":         7.5,
			"enabled":          true,
		},
	})
	require.NoError(t, err)

	found, err := repo.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "below_cart", found.Settings["displayposition"])
	assert.Equal(t, 7.5, found.Settings["discount"])
	assert.Equal(t, true, found.Settings["enabled"])
}

func TestScopeIsolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	scopeA := testScope(t, "rule")
	scopeB := testScope(t, "rule")
	cleanupScope(t, db, scopeA)
	cleanupScope(t, db, scopeB)
	repoA := implementation.NewEntityRepository(db, scopeA)
	repoB := implementation.NewEntityRepository(db, scopeB)

	id, err := repoA.Create(ctx, contract.CreateData{Name: "Rule in A"})
	require.NoError(t, err)

	// The other scope cannot see, mutate or remove the row even with the
	// real id.
	found, err := repoB.Find(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, found)

	name := "hijacked"
	affected, err := repoB.Update(ctx, id, contract.UpdateData{Name: &name})
	require.NoError(t, err)
	assert.False(t, affected)

	deleted, err := repoB.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, err := repoB.GetAll(ctx, contract.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, all)

	still, err := repoA.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, "Rule in A", still.Name)
}

func TestOrderByInjectionFallsBackToPriority(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bundle")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	for i, p := range []int{30, 10, 20} {
		priority := p
		_, err := repo.Create(ctx, contract.CreateData{
			Name:     []string{"c", "a", "b"}[i],
			Priority: &priority,
		})
		require.NoError(t, err)
	}

	safe, err := repo.GetAll(ctx, contract.ListOptions{OrderBy: "priority"})
	require.NoError(t, err)
	hostile, err := repo.GetAll(ctx, contract.ListOptions{OrderBy: "id; DROP TABLE storeboost_entities"})
	require.NoError(t, err)

	require.Equal(t, len(safe), len(hostile))
	for i := range safe {
		assert.Equal(t, safe[i].Id, hostile[i].Id)
	}
	assert.Equal(t, 10, safe[0].Priority)
	assert.Equal(t, 30, safe[2].Priority)
}

func TestBulkOperations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bump")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	affected, err := repo.BulkUpdateStatus(ctx, []int64{}, "inactive")
	require.NoError(t, err)
	assert.Zero(t, affected)

	var ids []int64
	for _, name := range []string{"one", "two", "three"} {
		id, err := repo.Create(ctx, contract.CreateData{Name: name})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	affected, err = repo.BulkUpdateStatus(ctx, ids[:2], "inactive")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	count, err := repo.Count(ctx, "inactive")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	removed, err := repo.BulkDelete(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestReorder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bundle")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	first, err := repo.Create(ctx, contract.CreateData{Name: "first"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, contract.CreateData{Name: "second"})
	require.NoError(t, err)

	require.NoError(t, repo.Reorder(ctx, map[int64]int{first: 20, second: 1}))

	ordered, err := repo.GetAll(ctx, contract.ListOptions{OrderBy: "priority"})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, second, ordered[0].Id)
	assert.Equal(t, first, ordered[1].Id)
}

func TestDuplicate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bundle")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	priority := 5
	sourceId, err := repo.Create(ctx, contract.CreateData{
		Name:     "Starter kit",
		Settings: settings.Map{"discount": 10},
		Priority: &priority,
	})
	require.NoError(t, err)

	copyId, err := repo.Duplicate(ctx, sourceId)
	require.NoError(t, err)
	require.NotEqual(t, sourceId, copyId)

	copied, err := repo.Find(ctx, copyId)
	require.NoError(t, err)
	require.NotNil(t, copied)
	assert.Equal(t, "Starter kit (Copy)", copied.Name)
	assert.Equal(t, "inactive", string(copied.Status))
	assert.Equal(t, 6, copied.Priority)
	assert.Equal(t, float64(10), copied.Settings["discount"])

	// Mutating the copy's settings must not leak into the source.
	copied.Settings["discount"] = float64(99)
	affected, err := repo.Update(ctx, copyId, contract.UpdateData{Settings: copied.Settings})
	require.NoError(t, err)
	assert.True(t, affected)

	source, err := repo.Find(ctx, sourceId)
	require.NoError(t, err)
	assert.Equal(t, float64(10), source.Settings["discount"])

	// Duplicating a missing id is a failure, not a silent zero.
	_, err = repo.Duplicate(ctx, 0)
	assert.Error(t, err)
}

func TestFindBySetting(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "rule")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	matchId, err := repo.Create(ctx, contract.CreateData{
		Name:     "camera rule",
		Settings: settings.Map{"trigger_product": 3001},
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, contract.CreateData{
		Name:     "other rule",
		Settings: settings.Map{"trigger_product": 4001},
	})
	require.NoError(t, err)

	inactive := "inactive"
	hiddenId, err := repo.Create(ctx, contract.CreateData{
		Name:     "disabled rule",
		Settings: settings.Map{"trigger_product": 3001},
		Status:   inactive,
	})
	require.NoError(t, err)

	matched, err := repo.FindBySetting(ctx, "trigger_product", 3001)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, matchId, matched[0].Id)
	assert.NotEqual(t, hiddenId, matched[0].Id)
}

func TestUpdateRefreshesTimestampWithoutOtherFields(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := testScope(t, "bump")
	cleanupScope(t, db, s)
	repo := implementation.NewEntityRepository(db, s)

	id, err := repo.Create(ctx, contract.CreateData{Name: "bump"})
	require.NoError(t, err)

	before, err := repo.Find(ctx, id)
	require.NoError(t, err)

	affected, err := repo.Update(ctx, id, contract.UpdateData{})
	require.NoError(t, err)
	assert.True(t, affected)

	after, err := repo.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Name, after.Name)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}
