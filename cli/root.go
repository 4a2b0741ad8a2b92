package cli

import (
	"context"
	"fmt"
	"os"

	"rentals/repository"

	"github.com/spf13/cobra"
)

var envFile string

// Execute chạy root command; không có sub-command thì mặc định là serve
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rentals",
		Short:        "Apartment rental marketplace API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file")

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		CreateAdminCmd(),
	)
	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer rt.close()
	return serve(cmd.Context(), rt)
}

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, cron jobs and mail worker",
		RunE:  runServe,
	}
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(envFile)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := repository.Migrate(rt.db); err != nil {
				return fmt.Errorf("failed to migrate tables: %w", err)
			}
			rt.log.Info("Migrate thành công")
			return nil
		},
	}
}

func CreateAdminCmd() *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(envFile)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			user, err := rt.authService().CreateAdmin(ctx, email, name, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&name, "name", "Admin", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
