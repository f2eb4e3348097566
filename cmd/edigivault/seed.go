package main

import (
	"context"
	"fmt"

	"edigivault/internal/db"
	"edigivault/internal/seed"
	"edigivault/internal/store"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo workflow data",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "user-id",
			Usage:    "User to own the seeded records",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		projectRepo := store.NewProjectRepository(pool)
		propertyRepo := store.NewPropertyRepository(pool)
		requestRepo := store.NewServiceRequestRepository(pool)
		documentRepo := store.NewDocumentRepository(pool)

		logrus.Info("Seeding demo workflow...")
		fixtures, err := seed.SeedDemo(ctx, c.String("user-id"), projectRepo, propertyRepo, requestRepo, documentRepo)
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}

		pp.Println(fixtures)

		logrus.Info("Demo workflow seeded successfully")

		return nil
	},
}
