package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbergstrom/mapview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a mapview configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultConfigFile)
			}
		}

		if _, err := config.RunWizard(); err != nil {
			return err
		}
		fmt.Println("Run `mapview serve` to open your map.")
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
