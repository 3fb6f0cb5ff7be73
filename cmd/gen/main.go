package main

import (
	"flag"
	"log"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/database/model"

	"gorm.io/driver/mysql"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// Generates typed query helpers for the queue tables, for use by chunk
// consumers that share this schema.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	outPath := flag.String("out", "internal/database/query", "output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverMySQL {
		log.Fatalf("gen supports the mysql driver only, got %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.BuildDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:        *outPath,
		Mode:           gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:  true,
		FieldCoverable: true,
	})

	g.UseDB(db)
	g.ApplyBasic(model.Document{}, model.Chunk{})

	g.Execute()
}
