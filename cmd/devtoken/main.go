// Command devtoken mints a bearer token for local testing, optionally
// provisioning the profile row the identity provider would normally create.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"attendance-tasks/domain/models"
	"attendance-tasks/infrastructure/postgres"
	"attendance-tasks/pkg/config"
	"attendance-tasks/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type options struct {
	userID string
	email  string
	ttl    time.Duration
	create bool
	name   string
	role   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint a development bearer token",
		Long: `Mint an HS256 token signed with JWT_SECRET for the given user id.
With --create the profile is inserted into the configured database first.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user", "", "user id (generated when empty)")
	cmd.Flags().StringVar(&opts.email, "email", "dev@example.com", "email claim")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&opts.create, "create", false, "insert the profile into the database")
	cmd.Flags().StringVar(&opts.name, "name", "Dev User", "full name for --create")
	cmd.Flags().StringVar(&opts.role, "role", string(models.RoleIntern), "role for --create (intern or coordinator)")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	userID := uuid.New()
	if opts.userID != "" {
		if userID, err = uuid.Parse(opts.userID); err != nil {
			return fmt.Errorf("invalid user id %q: %w", opts.userID, err)
		}
	}

	if opts.create {
		if err := createProfile(cmd.Context(), cfg, userID, opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Created %s profile %s (%s)\n", opts.role, userID, opts.email)
	}

	token, err := utils.GenerateToken(userID, opts.email, cfg.JWT.Secret, opts.ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func createProfile(ctx context.Context, cfg *config.Config, userID uuid.UUID, opts *options) error {
	role := models.UserRole(opts.role)
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", opts.role)
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := postgres.NewUserRepository(db).Create(ctx, &models.User{
		ID:       userID,
		Email:    opts.email,
		FullName: opts.name,
		Role:     role,
	}); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}
