package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"storeboost/internal/schema"
	"storeboost/pkg/database"
)

func main() {
	drop := flag.Bool("drop", false, "drop the storeboost tables instead of creating them")
	flag.Parse()

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

	manager := schema.NewManager(db)

	if *drop {
		log.Println("Dropping storeboost tables...")
		if err := manager.DropTables(); err != nil {
			log.Fatal("Error: Drop failed:", err)
		}
		log.Println("Done.")
		return
	}

	log.Println("Ensuring storeboost tables...")
	if err := manager.EnsureTables(); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}
	if !manager.HasEntityTable() || !manager.HasOptionTable() {
		log.Fatal("Error: tables missing after migration")
	}
	log.Println("Done.")
}
