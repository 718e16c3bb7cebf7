package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// devStack holds the containers started by dev-stack.
type devStack struct {
	Network    *testcontainers.DockerNetwork
	Containers []testcontainers.Container
}

func (s *devStack) Terminate() {
	ctx := context.Background()
	for i := len(s.Containers) - 1; i >= 0; i-- {
		if err := s.Containers[i].Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v", err)
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			log.Printf("Failed to remove network: %v", err)
		}
	}
}

type devStackOptions struct {
	dbImage     string
	authzImage  string
	withMongo   bool
	withRedis   bool
	clientID    string
	adminSecret string
}

func devStackCmd() *cobra.Command {
	opts := devStackOptions{}
	cmd := &cobra.Command{
		Use:   "dev-stack",
		Short: "Run MariaDB, Authorizer and optionally MongoDB and Redis in containers until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack := &devStack{}
			defer stack.Terminate()

			env, err := startDevStack(cmd.Context(), stack, opts)
			if err != nil {
				return err
			}
			for _, line := range env {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			log.Println("Containers running, press Ctrl+C to stop")
			<-cmd.Context().Done()
			log.Println("Terminating containers...")
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.dbImage, "db-image", "mariadb:11", "MariaDB image")
	cmd.Flags().StringVar(&opts.authzImage, "authz-image", "lakhansamani/authorizer:latest", "Authorizer image")
	cmd.Flags().BoolVar(&opts.withMongo, "with-mongo", false, "also start MongoDB for STORAGE_DRIVER=gridfs")
	cmd.Flags().BoolVar(&opts.withRedis, "with-redis", false, "also start Redis for the listing cache")
	cmd.Flags().StringVar(&opts.clientID, "authz-client-id", "roomfinder-dev", "Authorizer client id")
	cmd.Flags().StringVar(&opts.adminSecret, "authz-admin-secret", "roomfinder-admin", "Authorizer admin secret")
	return cmd
}

// startDevStack starts the containers and returns the environment lines a local
// server needs to reach them.
func startDevStack(ctx context.Context, stack *devStack, opts devStackOptions) ([]string, error) {
	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	stack.Network = nw

	const dbAlias, dbRootPassword = "db", "rootpass"
	dbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, err
	}
	db, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.dbImage,
			ExposedPorts: []string{string(dbPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": dbRootPassword,
				"MARIADB_DATABASE":      "roomfinder",
				"MARIADB_USER":          "roomfinder",
				"MARIADB_PASSWORD":      "roomfinder",
			},
			WaitingFor:     wait.ForListeningPort(dbPort).WithStartupTimeout(90 * time.Second),
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {dbAlias}},
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}
	stack.Containers = append(stack.Containers, db)

	dbHost, err := db.Host(ctx)
	if err != nil {
		return nil, err
	}
	dbMapped, err := db.MappedPort(ctx, dbPort)
	if err != nil {
		return nil, err
	}
	if err := createDatabase(ctx, fmt.Sprintf("root:%s@tcp(%s:%s)/", dbRootPassword, dbHost, dbMapped.Port()), "authorizer"); err != nil {
		return nil, err
	}

	env := []string{
		"DB_TYPE=mariadb",
		"DB_HOST=" + dbHost,
		"DB_PORT=" + dbMapped.Port(),
		"DB_DATABASE=roomfinder",
		"DB_USER=roomfinder",
		"DB_PASSWORD=roomfinder",
	}

	authzPort, err := nat.NewPort("tcp", "8080")
	if err != nil {
		return nil, err
	}
	authz, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.authzImage,
			ExposedPorts: []string{string(authzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     opts.clientID,
				"PORT":          authzPort.Port(),
				"DATABASE_TYPE": "mariadb",
				"DATABASE_NAME": "authorizer",
				"DATABASE_URL":  fmt.Sprintf("root:%s@tcp(%s:3306)/authorizer", dbRootPassword, dbAlias),
				"ADMIN_SECRET":  opts.adminSecret,
				"ROLES":         "student,owner,maushi,admin",
				"DEFAULT_ROLES": "student",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(60 * time.Second),
			Networks:   []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Authorizer: %w", err)
	}
	stack.Containers = append(stack.Containers, authz)

	authzEndpoint, err := authz.PortEndpoint(ctx, authzPort, "http")
	if err != nil {
		return nil, err
	}
	env = append(env, "AUTH_PROVIDER=authorizer", "AUTHZ_URL="+authzEndpoint, "AUTHZ_CLIENT_ID="+opts.clientID)

	if opts.withMongo {
		endpoint, err := startSimple(ctx, stack, "mongo:7", "27017", "mongodb", wait.ForLog("Waiting for connections"))
		if err != nil {
			return nil, err
		}
		env = append(env, "STORAGE_DRIVER=gridfs", "MONGO_URI="+endpoint)
	}
	if opts.withRedis {
		endpoint, err := startSimple(ctx, stack, "redis:7", "6379", "", wait.ForLog("Ready to accept connections"))
		if err != nil {
			return nil, err
		}
		env = append(env, "REDIS_ADDR="+endpoint)
	}

	return env, nil
}

// startSimple starts a single-port container and returns its endpoint. An empty
// scheme yields host:port.
func startSimple(ctx context.Context, stack *devStack, image, port, scheme string, strategy wait.Strategy) (string, error) {
	p, err := nat.NewPort("tcp", port)
	if err != nil {
		return "", err
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(p)},
			WaitingFor:   strategy,
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start %s: %w", image, err)
	}
	stack.Containers = append(stack.Containers, c)
	return c.PortEndpoint(ctx, p, scheme)
}

// createDatabase waits for the server to accept connections, then creates name.
func createDatabase(ctx context.Context, dsn, name string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for range 30 {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}

	_, err = db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+name)
	return err
}
