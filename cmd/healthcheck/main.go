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
	"time"

	"github.com/roomfinder/roomfinder-api/internal/config"
	"github.com/roomfinder/roomfinder-api/internal/database"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/storage"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	deps := services.HealthDeps{DB: db}

	objects, closeObjects, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open object store: %v", err)
	}
	defer closeObjects()
	deps.Objects = objects

	cache, err := services.NewCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to cache: %v", err)
	}
	defer cache.Close()
	deps.Cache = cache

	// An unreachable identity provider fails construction, so report it rather than exit
	auth, authErr := services.NewAuthenticator(cfg)
	if authErr != nil {
		log.Printf("Auth provider unavailable: %v", authErr)
	} else {
		deps.Auth = auth
	}

	// Perform health check
	result := services.HealthCheck(ctx, deps)
	if authErr != nil {
		result.Status = "unhealthy"
		result.Auth = "unreachable"
		if result.ErrorMessage != "" {
			result.ErrorMessage += "; "
		}
		result.ErrorMessage += fmt.Sprintf("auth check failed: %v", authErr)
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
