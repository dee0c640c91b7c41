package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/casestudies"
	"github.com/Ajees1626/Pixdotbackend/internal/config"
	"github.com/Ajees1626/Pixdotbackend/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo casestudies.Repository
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Fatal(err)
		}
		repo = casestudies.NewPostgresRepository(pool)
	default:
		repo = casestudies.NewFileRepository(cfg.CaseStudiesFile)
	}

	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) > 0 {
		log.Printf("store already has %d case studies, skipping seed", len(existing))
		return
	}

	seeds := []casestudies.CaseStudy{
		{
			Title:      "E-commerce Relaunch",
			Client:     "Chennai Silks",
			Date:       "2024",
			Duration:   "3 months",
			Industry:   "Retail",
			Category:   "Web Development",
			Image:      "/uploads/ecommerce-relaunch.png",
			SideImages: []string{},
			Content:    json.RawMessage(`[{"type":"paragraph","text":"Full storefront redesign with a headless catalog."}]`),
		},
		{
			Title:      "Brand Identity Refresh",
			Client:     "Kovai Foods",
			Date:       "2024",
			Duration:   "6 weeks",
			Industry:   "FMCG",
			Category:   "Branding",
			Image:      "/uploads/brand-identity.png",
			SideImages: []string{},
			Content:    json.RawMessage(`[{"type":"paragraph","text":"Logo system, packaging and launch collateral."}]`),
		},
		{
			Title:      "Lead Generation Campaign",
			Client:     "Madurai Realty",
			Date:       "2023",
			Duration:   "2 months",
			Industry:   "Real Estate",
			Category:   "Digital Marketing",
			Image:      "/uploads/lead-gen.png",
			SideImages: []string{},
			Content:    json.RawMessage(`[{"type":"paragraph","text":"Paid social funnel with landing page A/B tests."}]`),
		},
	}

	for _, seed := range seeds {
		created, err := repo.Create(ctx, seed)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("seeded case study %d: %s", created.ID, created.Title)
	}
}
