// Seeds demo entities for each built-in feature so a fresh environment
// has something to look at.
package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"storeboost/internal/entity"
	"storeboost/internal/repository/contract"
	"storeboost/internal/repository/implementation"
	"storeboost/internal/repository/scope"
	"storeboost/internal/schema"
	"storeboost/internal/settings"
	"storeboost/pkg/database"
	"storeboost/pkg/features/bundle"
	"storeboost/pkg/features/orderbump"
	"storeboost/pkg/features/recommendation"
)

type seedEntity struct {
	name     string
	settings settings.Map
	status   string
	priority int
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if err := schema.NewManager(db).EnsureTables(); err != nil {
		log.Fatal("Error: Failed to ensure tables:", err)
	}

	ctx := context.Background()
	color.Cyan("Seeding storeboost demo data\n")

	seed(ctx, db, orderbump.FeatureId, orderbump.EntityTypeBump, []seedEntity{
		{
			name:     "Gift wrap",
			settings: settings.Map{"product_id": 1101, "discount": 0, "position": "below_cart"},
			status:   "active",
			priority: 5,
		},
		{
			name:     "Extended warranty",
			settings: settings.Map{"product_id": 1102, "discount": 15, "position": "below_cart"},
			status:   "active",
			priority: 10,
		},
	})

	seed(ctx, db, bundle.FeatureId, bundle.EntityTypeBundle, []seedEntity{
		{
			name:     "Starter kit",
			settings: settings.Map{"product_ids": []any{2001, 2002, 2003}, "discount": 10},
			status:   "active",
			priority: 10,
		},
		{
			name:     "Pro kit",
			settings: settings.Map{"product_ids": []any{2001, 2004}, "discount": 20},
			status:   "draft",
			priority: 20,
		},
	})

	seed(ctx, db, recommendation.FeatureId, recommendation.EntityTypeRule, []seedEntity{
		{
			name:     "Camera buyers see tripods",
			settings: settings.Map{"trigger_product": 3001, "suggest": []any{3010, 3011}},
			status:   "active",
			priority: 10,
		},
	})

	color.Green("\nSeeding completed")
}

func seed(ctx context.Context, db *gorm.DB, featureId, entityType string, entities []seedEntity) {
	color.Yellow("\n[%s/%s]", featureId, entityType)
	repo := implementation.NewEntityRepository(db, scope.New(featureId, entityType))

	for _, e := range entities {
		existing, err := repo.GetAll(ctx, contract.ListOptions{Limit: 200})
		if err != nil {
			color.Red("Failed to list existing entities: %v", err)
			return
		}
		if containsName(existing, e.name) {
			log.Printf("Entity '%s' already exists, skipping...", e.name)
			continue
		}

		priority := e.priority
		id, err := repo.Create(ctx, contract.CreateData{
			Name:     e.name,
			Settings: e.settings,
			Status:   e.status,
			Priority: &priority,
		})
		if err != nil {
			color.Red("Failed to create '%s': %v", e.name, err)
			continue
		}
		color.Green("Created %s (id=%d)", e.name, id)
	}
}

func containsName(entities []*entity.Entity, name string) bool {
	for _, e := range entities {
		if e.Name == name {
			return true
		}
	}
	return false
}
