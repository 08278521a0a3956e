package main

import (
	"asset-manager/internal/assetmanager/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Print the resolved server instance configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(map[string]interface{}{
			"store":   cfg.StoreType,
			"servers": cfg.Servers,
		})
	},
}

func init() {
	rootCmd.AddCommand(serversCmd)
}
