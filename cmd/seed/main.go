package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	"github.com/ngocminh-dev/tcms-api/internal/repository"
	"github.com/ngocminh-dev/tcms-api/pkg/config"
	"github.com/ngocminh-dev/tcms-api/pkg/database"
)

// seed creates or refreshes an application account so a fresh deployment has
// a way to log in. Run it once per account:
//
//	seed -username admin -password S3cret -role ROLE_ADMIN
func main() {
	username := flag.String("username", "admin", "login name")
	password := flag.String("password", "", "plaintext password to hash (required)")
	role := flag.String("role", string(models.RoleAdmin), "account role")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "seed: -password is required")
		flag.Usage()
		os.Exit(2)
	}
	accountRole := models.Role(*role)
	if !accountRole.Valid() {
		fmt.Fprintf(os.Stderr, "seed: unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     *username,
		PasswordHash: string(hash),
		Role:         accountRole,
		Active:       true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repository.NewUserRepository(db).Upsert(ctx, user); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded %s (%s) with id %d\n", user.Username, user.Role, user.ID)
}
