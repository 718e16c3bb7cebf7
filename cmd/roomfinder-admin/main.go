// main.go
//
// RoomFinder listings and helper-profile data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of roomfinder-api.
// roomfinder-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// roomfinder-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with roomfinder-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roomfinder/roomfinder-api/data"
	"github.com/roomfinder/roomfinder-api/internal/config"
	"github.com/roomfinder/roomfinder-api/internal/database"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	root := &cobra.Command{
		Use:           "roomfinder-admin",
		Short:         "Maintenance tasks for the RoomFinder data service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrateCmd(),
		seedCmd(),
		normalizeCmd(),
		schemaCmd(),
		tokenCmd(),
		devStackCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("Error: %v", err)
	}
}

// openStore loads configuration and connects the record store. The returned
// function closes the connection.
func openStore() (*services.RecordStore, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() { database.Close(db) }

	if err := database.AutoMigrate(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	store, err := services.NewRecordStore(db)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the properties, domestic_helpers and reviews tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			log.Println("Migrations complete")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo listings, helpers and reviews, skipping rows that exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := data.SeedJSON
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				raw = b
			}

			var rows map[string][]models.Row
			if err := json.Unmarshal(raw, &rows); err != nil {
				return fmt.Errorf("invalid seed data: %w", err)
			}

			store, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := services.Seed(cmd.Context(), store, rows)
			if err != nil {
				return err
			}
			log.Printf("Seeded %d rows", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed JSON keyed by table name (defaults to the built-in demo data)")
	return cmd
}

func normalizeCmd() *cobra.Command {
	var dryRun bool
	var batchSize int
	cmd := &cobra.Command{
		Use:   "normalize-collections",
		Short: "Rewrite collection columns stored as CSV or JSON text into JSON arrays",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			reports := make([]services.CollectionReport, 0, 2)
			for _, table := range []string{services.TableProperties, services.TableHelpers} {
				report, err := services.NormalizeCollections(cmd.Context(), store, table, batchSize, dryRun)
				if err != nil {
					return fmt.Errorf("failed to normalize %s: %w", table, err)
				}
				reports = append(reports, report)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing them")
	cmd.Flags().IntVar(&batchSize, "batch-size", 200, "rows read per query")
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the columns the migrations create, using an in-memory database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(&config.Config{DBType: "sqlite-go", DBDatabase: ":memory:", DBConnectionLimit: 1, DBLogLevel: "silent"})
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			return printSchema(cmd, db)
		},
	}
}

func printSchema(cmd *cobra.Command, db *gorm.DB) error {
	out := cmd.OutOrStdout()
	for _, table := range []string{services.TableProperties, services.TableHelpers, services.TableReviews} {
		columns, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n=== Table: %s ===\n", table)
		for _, col := range columns {
			nullable, _ := col.Nullable()
			fmt.Fprintf(out, "%-28s %-16s nullable=%t\n", col.Name(), col.DatabaseTypeName(), nullable)
		}
	}
	return nil
}

func tokenCmd() *cobra.Command {
	var session types.Session
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token with AUTH_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.AuthProvider != config.AuthProviderJWT {
				return fmt.Errorf("token signing requires AUTH_PROVIDER=%s", config.AuthProviderJWT)
			}
			session.Role = types.CanonicalRole(session.Role)

			token, err := services.NewJWTAuthenticator(cfg.AuthJWTSecret).SignToken(session, jwt.MapClaims{
				"exp": time.Now().Add(ttl).Unix(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&session.UserID, "user", "dev-user", "subject claim")
	cmd.Flags().StringVar(&session.Email, "email", "dev@example.com", "email claim")
	cmd.Flags().StringVar(&session.Role, "role", types.RoleStudent, "student, owner, maushi or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
