package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Project-CookFlow-E2E/CF-Backend/cmd/config"
	migration "github.com/Project-CookFlow-E2E/CF-Backend/cmd/database/migrate"
	"github.com/Project-CookFlow-E2E/CF-Backend/cmd/database/seed"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/jwt"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cookflow",
		Short:         "CookFlow recipe backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.LoadConfig()
		},
	}

	serve := newServeCommand()
	cmd.RunE = serve.RunE
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newTokenCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(utils.GetConfig("APP_ENV"))
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			if migrate {
				if err := migration.Migrate(db); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := config.NewApp(ctx, db, log)
			if err != nil {
				return err
			}
			defer app.Close()

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Fiber.Listen(":" + utils.GetConfig("APP_PORT"))
			}()
			log.Info("server started", "port", utils.GetConfig("APP_PORT"))

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Info("shutting down")
				return app.Fiber.Shutdown()
			}
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			if err := migration.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the system owner and reference catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			ownerID := uint(utils.GetConfigInt("SYSTEM_OWNER_ID"))
			if err := seed.Seed(context.Background(), db, ownerID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed completed")
			return nil
		},
	}
}

func newTokenCommand() *cobra.Command {
	var (
		userID uint
		role   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != entities.RoleUser && role != entities.RoleAdmin {
				return fmt.Errorf("invalid role %q", role)
			}
			token, err := jwt.NewJWTService().GenerateTokenUser(userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&role, "role", entities.RoleUser, "user or admin")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
