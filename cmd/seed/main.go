// seed creates a demo user and a handful of job applications in whatever
// store DATABASE_URL points at. Re-running logs in as the existing user and
// adds nothing twice.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/jobs-api/config"
	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/email"
	"github.com/ErlanBelekov/jobs-api/internal/infrastructure"
	"github.com/ErlanBelekov/jobs-api/internal/password"
	"github.com/ErlanBelekov/jobs-api/internal/token"
	"github.com/ErlanBelekov/jobs-api/internal/usecase"
	"github.com/lmittmann/tint"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type jobSpec struct {
	company  string
	position string
	status   domain.Status
}

var jobs = []jobSpec{
	{"Acme", "Backend Engineer", domain.StatusPending},
	{"Globex", "Platform Engineer", domain.StatusInterview},
	{"Initech", "Site Reliability Engineer", domain.StatusDeclined},
	{"Umbrella", "Staff Engineer", domain.StatusPending},
	{"Hooli", "Go Developer", domain.StatusInterview},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))

	store, err := infrastructure.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns, logger)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.JWTLifetime)
	auth := usecase.NewAuthUsecase(store.Users, password.NewHasher(bcrypt.DefaultCost), tokens, email.NewSender("local", "", "", logger), logger)
	jobUC := usecase.NewJobUsecase(store.Jobs)

	res, err := auth.Register(ctx, usecase.RegisterInput{Name: seedName, Email: seedEmail, Password: seedPassword})
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		res, err = auth.Login(ctx, seedEmail, seedPassword)
		if err != nil {
			log.Fatalf("login seed user: %v", err)
		}
	case err != nil:
		log.Fatalf("register seed user: %v", err)
	}

	existing, err := jobUC.ListJobs(ctx, res.User.ID)
	if err != nil {
		log.Fatalf("list jobs: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, j := range existing {
		have[j.Company+"|"+j.Position] = true
	}

	var inserted, skipped int
	for _, spec := range jobs {
		if have[spec.company+"|"+spec.position] {
			skipped++
			continue
		}
		if _, err := jobUC.CreateJob(ctx, usecase.CreateJobInput{
			UserID:   res.User.ID,
			Company:  spec.company,
			Position: spec.position,
			Status:   spec.status,
		}); err != nil {
			log.Fatalf("create job %s: %v", spec.company, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Backend:      %s\n", store.Backend)
	fmt.Printf("  User:         %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:      %s\n", res.User.ID)
	fmt.Printf("  Jobs created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Printf("  export JWT=%s\n", res.Token)
	fmt.Printf("  curl -s http://localhost:%s/api/v1/jobs -H \"Authorization: Bearer $JWT\"\n", cfg.Port)
}
