package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/roomfinder/roomfinder-api/internal/storage"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	ObjectStore  string            `json:"objectStore"`
	Auth         string            `json:"auth"`
	Cache        string            `json:"cache,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthDeps are the dependencies a health check probes. Nil members are skipped.
type HealthDeps struct {
	DB      *gorm.DB
	Objects storage.ObjectStore
	Auth    Authenticator
	Cache   *Cache
}

func (r *HealthCheckResult) fail(component, detail string, err error) string {
	r.Status = "unhealthy"
	r.Details[component+"_error"] = err.Error()
	msg := fmt.Sprintf("%s check failed: %v", component, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
	log.Printf("Health check failed - %s: %v", component, err)
	return detail
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, deps HealthDeps) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	if deps.DB != nil {
		sqlDB, err := deps.DB.DB()
		switch {
		case err != nil:
			result.Database = result.fail("database", "error", err)
		default:
			if err := sqlDB.PingContext(ctx); err != nil {
				result.Database = result.fail("database", "unreachable", err)
			} else {
				result.Database = "ok"
				result.Details["database_type"] = deps.DB.Dialector.Name()
			}
		}
	}

	if deps.Objects != nil {
		if err := deps.Objects.Ping(ctx); err != nil {
			result.ObjectStore = result.fail("object_store", "unreachable", err)
		} else {
			result.ObjectStore = "ok"
			result.Details["object_store"] = strings.TrimPrefix(fmt.Sprintf("%T", deps.Objects), "*storage.")
		}
	}

	if deps.Auth != nil {
		if err := deps.Auth.Ping(ctx); err != nil {
			result.Auth = result.fail("auth", "unreachable", err)
		} else {
			result.Auth = "ok"
		}
	}

	if deps.Cache != nil {
		if err := deps.Cache.Ping(ctx); err != nil {
			result.Cache = result.fail("cache", "unreachable", err)
		} else {
			result.Cache = "ok"
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
