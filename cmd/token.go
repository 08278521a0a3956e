package main

import (
	"errors"
	"fmt"

	"asset-manager/internal/auth/adapter/security"
	authconfig "asset-manager/internal/auth/config"

	"github.com/spf13/cobra"
)

var tokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := authconfig.LoadConfig()
		if err != nil {
			return err
		}
		if !cfg.Enabled {
			return errors.New("AUTH_ENABLED is false, tokens are not checked")
		}
		tokens, err := security.NewJWTokenService(cfg)
		if err != nil {
			return err
		}
		token, err := tokens.GenerateToken(cmd.Context(), tokenUser)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User the token is issued to")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
