package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"qtholidays-service/internal/infrastructure/config"
	"qtholidays-service/internal/infrastructure/persistence"
	"qtholidays-service/internal/interface/repository"
	"qtholidays-service/internal/usecase"
	"qtholidays-service/pkg/logger"
)

// Creates a staff account able to sign in to the back office.
//
//	go run ./cmd/utils/create_staff -email desk@qtholidays.in -name "Front Desk" -password ...
func main() {
	email := flag.String("email", "", "staff email address")
	name := flag.String("name", "", "display name")
	password := flag.String("password", os.Getenv("STAFF_PASSWORD"), "initial password (or STAFF_PASSWORD)")
	flag.Parse()

	log := logger.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.AutoMigrateStaff(gormDB); err != nil {
		log.Fatal("Failed to migrate staff table", "error", err)
	}

	auth := usecase.NewAuthService(repository.NewGormStaffRepository(gormDB), cfg.JWTSecret, cfg.SessionTTL, usecase.SystemClock{}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := auth.RegisterStaff(ctx, *email, *name, *password)
	if err != nil {
		log.Fatal("Failed to create staff user", "error", err)
	}

	fmt.Printf("Created staff user %d <%s>\n", user.ID, user.Email)
}
