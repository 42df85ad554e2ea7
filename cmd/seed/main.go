package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/config"
	"github.com/DonArtkins/kuja-twende-adventures/internal/database"
	"github.com/DonArtkins/kuja-twende-adventures/internal/log"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/repository"
	"github.com/DonArtkins/kuja-twende-adventures/internal/security"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
)

func main() {
	withDestinations := flag.Bool("destinations", true, "insert the sample destination catalogue")
	adminName := flag.String("admin-name", "Administrator", "display name for the admin account")
	adminEmail := flag.String("admin-email", "", "create or promote this account to admin")
	adminPassword := flag.String("admin-password", "", "password used when the admin account is created")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := log.New(cfg.Environment, cfg.Logging.Level).With().Str("component", "seed").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	destinations := repository.NewDestinationRepository(pool)
	users := repository.NewUserRepository(pool)

	failed := false
	if *withDestinations {
		if err := seedDestinations(ctx, destinations, logger); err != nil {
			logger.Error().Err(err).Msg("seeding destinations failed")
			failed = true
		}
	}

	if *adminEmail != "" {
		auth := service.NewAuthService(users, security.NewTokenService(cfg.Security.JWTSecret, cfg.Security.JWTTTL), logger)
		if err := ensureAdmin(ctx, auth, users, *adminName, *adminEmail, *adminPassword, logger); err != nil {
			logger.Error().Err(err).Str("email", *adminEmail).Msg("admin setup failed")
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// seedDestinations inserts catalogue entries whose slug is not taken yet,
// so running it twice is harmless.
func seedDestinations(ctx context.Context, store *repository.DestinationRepository, logger zerolog.Logger) error {
	svc := service.NewDestinationService(store, nil, nil, nil, logger)

	inserted := 0
	for _, input := range catalogue {
		_, err := store.GetBySlug(ctx, slug.Make(input.Title))
		if err == nil {
			logger.Debug().Str("title", input.Title).Msg("destination exists, skipping")
			continue
		}
		if !errors.Is(err, repository.ErrDestinationNotFound) {
			return err
		}

		if _, err := svc.Create(ctx, input); err != nil {
			return err
		}
		inserted++
	}

	logger.Info().Int("inserted", inserted).Int("catalogue", len(catalogue)).Msg("destinations seeded")
	return nil
}

func ensureAdmin(ctx context.Context, auth *service.AuthService, users *repository.UserRepository, name, email, password string, logger zerolog.Logger) error {
	var userID string

	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		userID = existing.ID
	case errors.Is(err, repository.ErrUserNotFound):
		result, err := auth.Signup(ctx, service.SignupInput{Name: name, Email: email, Password: password})
		if err != nil {
			return err
		}
		userID = result.User.ID
		logger.Info().Str("user_id", userID).Msg("admin account created")
	default:
		return err
	}

	if err := users.UpdateRole(ctx, userID, models.UserRoleAdmin); err != nil {
		return err
	}
	logger.Info().Str("user_id", userID).Msg("admin role granted")
	return nil
}
