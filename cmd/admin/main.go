// Command admin creates an ADMIN account directly in the ufind database.
// It reads the same configuration as the server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/ufind/internal/admin"
	"github.com/dmitrijs2005/ufind/internal/logging"
	"github.com/dmitrijs2005/ufind/internal/server/auth"
	"github.com/dmitrijs2005/ufind/internal/server/config"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ufind/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	as := services.NewAuthService(db, rm, tokens, logger)

	user, err := admin.CreateAdmin(ctx, as, admin.NewPrompter(os.Stdin, os.Stdout, int(os.Stdin.Fd())))
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)

}
