package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"refundly/internal/policy"
	"refundly/internal/products"
	"refundly/internal/shared/config"
	"refundly/internal/shared/database"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Refundly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	// Seed data
	fmt.Println("\nSeeding database...")
	if err := seeder.SeedProducts(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"cancellations",
		"products",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedProducts inserts one representative product per provider plus a few
// edge cases (activated eSIM, non-cancellable lounge pass).
func (s *Seeder) SeedProducts() error {
	ctx := context.Background()
	repo := products.NewRepository(s.db.GetPostgreSQL())

	now := time.Now().UTC()
	esimDeadline := now.Add(72 * time.Hour)

	seedProducts := []products.Product{
		{
			BookingRef:      "DP-10001",
			Provider:        string(policy.ProviderDragonpass),
			Type:            string(policy.ProductTypeLoungeAccess),
			Name:            "Plaza Premium Lounge, LHR T5",
			PriceAmount:     45,
			PriceCurrency:   "GBP",
			ServiceDateTime: now.Add(96 * time.Hour),
			CancellationPolicy: policy.CancellationPolicy{
				CanCancel: true,
				Windows: []policy.CancellationWindow{
					{HoursBeforeService: 24, RefundPercentage: 100, Description: "Free cancellation until 24h before entry"},
					{HoursBeforeService: 4, RefundPercentage: 50, Description: "Half refund until 4h before entry"},
				},
			},
			Metadata: policy.Metadata{AccessType: policy.AccessTypeSingleUse},
		},
		{
			BookingRef:      "DP-10002",
			Provider:        string(policy.ProviderDragonpass),
			Type:            string(policy.ProductTypeLoungeAccess),
			Name:            "SATS Premier Lounge, SIN T3 (promo)",
			PriceAmount:     30,
			PriceCurrency:   "SGD",
			ServiceDateTime: now.Add(48 * time.Hour),
			CancellationPolicy: policy.CancellationPolicy{
				CanCancel: false, // promo fares are final
			},
			Metadata: policy.Metadata{AccessType: policy.AccessTypeMultiUse},
		},
		{
			BookingRef:      "MZ-20001",
			Provider:        string(policy.ProviderMozio),
			Type:            string(policy.ProductTypeAirportTransfer),
			Name:            "Private transfer JFK to Manhattan",
			PriceAmount:     85,
			PriceCurrency:   "USD",
			ServiceDateTime: now.Add(36 * time.Hour),
			CancellationPolicy: policy.CancellationPolicy{
				CanCancel: true,
				Windows: []policy.CancellationWindow{
					{HoursBeforeService: 24, RefundPercentage: 100, Description: "Free cancellation until 24h before pickup"},
					{HoursBeforeService: 2, RefundPercentage: 80, Description: "80% refund until 2h before pickup"},
					{HoursBeforeService: 0, RefundPercentage: 0, Description: "Non-refundable inside 2h"},
				},
			},
		},
		{
			BookingRef:         "AR-30001",
			Provider:           string(policy.ProviderAiralo),
			Type:               string(policy.ProductTypeESIM),
			Name:               "Europe 10GB / 30 days eSIM",
			PriceAmount:        22.5,
			PriceCurrency:      "USD",
			ServiceDateTime:    now.Add(120 * time.Hour),
			ActivationDeadline: &esimDeadline,
			CancellationPolicy: policy.CancellationPolicy{
				CanCancel:       true,
				CancelCondition: policy.CancelOnlyIfNotActivated,
				Windows: []policy.CancellationWindow{
					{HoursBeforeService: 0, RefundPercentage: 100, Description: "Full refund while unactivated"},
				},
			},
		},
		{
			BookingRef:         "AR-30002",
			Provider:           string(policy.ProviderAiralo),
			Type:               string(policy.ProductTypeESIM),
			Name:               "Japan 5GB / 15 days eSIM (activated)",
			PriceAmount:        14,
			PriceCurrency:      "USD",
			ServiceDateTime:    now.Add(120 * time.Hour),
			ActivationDeadline: &esimDeadline,
			CancellationPolicy: policy.CancellationPolicy{
				CanCancel:       true,
				CancelCondition: policy.CancelOnlyIfNotActivated,
				Windows: []policy.CancellationWindow{
					{HoursBeforeService: 0, RefundPercentage: 100, Description: "Full refund while unactivated"},
				},
			},
			Metadata: policy.Metadata{IsActivated: true},
		},
	}

	for i := range seedProducts {
		if err := repo.Create(ctx, &seedProducts[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", seedProducts[i].BookingRef, err)
		}
		fmt.Printf("  Seeded product: %s (%s)\n", seedProducts[i].BookingRef, seedProducts[i].Name)
	}

	return nil
}
