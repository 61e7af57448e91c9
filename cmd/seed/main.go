package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/userhub/userhub/config"
	"github.com/userhub/userhub/internal/domain/entity"
	pginfra "github.com/userhub/userhub/internal/infrastructure/postgres"
	"github.com/userhub/userhub/pkg/helpers"
)

// Seeds an initial admin account, idempotently.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := envOr("SEED_ADMIN_EMAIL", "admin@userhub.local")
	password := envOr("SEED_ADMIN_PASSWORD", "ChangeMe123")

	repo := pginfra.NewUserRepository(pool)
	if exists, err := repo.EmailExists(ctx, email); err != nil {
		log.Fatalf("failed to check admin account: %v", err)
	} else if exists {
		fmt.Printf("admin account %s already present\n", email)
		return
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	admin, err := entity.NewUser(email, "System", "Administrator", hash)
	if err != nil {
		log.Fatalf("failed to build admin user: %v", err)
	}
	admin.AssignRole(entity.RoleAdmin)

	if err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", admin.ID, email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
