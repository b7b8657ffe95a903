package main

import (
	"github.com/spf13/cobra"

	"github.com/roksva123/go-taskboard-backend/internal/service"
)

func newSeedAdminCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin login or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if username == "" {
				username = a.cfg.AdminUsername
			}
			if password == "" {
				password = a.cfg.AdminPassword
			}
			if err := a.repo.RunMigrations(); err != nil {
				return err
			}
			tokens := service.NewTokenIssuer(a.cfg.JWTSecret, a.cfg.JWTIssuer, a.cfg.JWTAudience, a.cfg.JWTTTL)
			auth := service.NewAuthService(a.repo, tokens, a.cfg.AllowPlaintextPasswords, a.log)
			return auth.SeedAdmin(cmd.Context(), username, password)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username (default ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")
	return cmd
}
