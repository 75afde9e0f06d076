package service

import (
	"context"
	"fmt"
	"log"

	"pos-admin-api/internal/model"
	"pos-admin-api/internal/repository"
)

// SampleOutlets are created, in this order, into an empty outlets collection.
var SampleOutlets = []model.Outlet{
	{Name: "Downtown Flagship", Address: "100 Main Street, Springfield"},
	{Name: "Riverside Market", Address: "22 River Road, Springfield"},
	{Name: "Airport Terminal B", Address: "Terminal B, Springfield International Airport"},
	{Name: "Northgate Mall", Address: "455 Northgate Blvd, Unit 12, Springfield"},
	{Name: "University Campus", Address: "1 College Ave, Student Union, Springfield"},
	{Name: "Harbor Point", Address: "8 Pier Street, Harbor District"},
	{Name: "Westside Plaza", Address: "730 West Avenue, Springfield"},
	{Name: "Central Station Kiosk", Address: "Central Station, Concourse A"},
	{Name: "Lakeside Drive-Thru", Address: "61 Lakeshore Drive, Springfield"},
	{Name: "Old Town Corner", Address: "3 Market Square, Old Town"},
}

// SeedResult reports what a seeding run did. Seeding is best effort:
// failures are counted and logged, never returned as an error.
type SeedResult struct {
	Skipped bool     `json:"skipped"`
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Completed reports whether the run got past reading the collection. A run
// that could not list the outlets should be retried.
func (r SeedResult) Completed() bool {
	return !r.Skipped || len(r.Errors) == 0
}

// Seeder populates an empty outlets collection with SampleOutlets.
type Seeder struct {
	repo    repository.RecordRepository
	samples []model.Outlet
}

// NewSeeder creates a seeder writing through repo.
func NewSeeder(repo repository.RecordRepository) *Seeder {
	return &Seeder{repo: repo, samples: SampleOutlets}
}

// Seed creates the sample outlets if the collection is empty. A non-empty
// collection is left alone whatever it contains.
func (s *Seeder) Seed(ctx context.Context) SeedResult {
	var result SeedResult

	existing, err := s.repo.List(ctx, model.ResourceOutlets)
	if err != nil {
		log.Printf("[Seeder] Failed to list outlets, skipping seed: %v", err)
		result.Skipped = true
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(existing) > 0 {
		result.Skipped = true
		return result
	}

	for _, outlet := range s.samples {
		fields, err := model.ToRecord(outlet)
		if err == nil {
			_, err = s.repo.Create(ctx, model.ResourceOutlets, fields)
		}
		if err != nil {
			log.Printf("[Seeder] Failed to create sample outlet %q: %v", outlet.Name, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", outlet.Name, err))
			continue
		}
		result.Created++
	}

	log.Printf("[Seeder] Seeded %d sample outlets (%d failed)", result.Created, result.Failed)
	return result
}
