package cmd

import (
	"github.com/spf13/cobra"

	"github.com/richmanstudio/studio/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize studio configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the studio site and mail delivery and writes the config file (.studio.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
