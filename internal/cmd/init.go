package cmd

import (
	"fmt"

	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project configuration file with the defaults",
	Long: `Write ` + config.ProjectConfigFilename + ` to the working directory, holding the
default viewport settings so they can be edited in place.`,
	Example: `
# Create the project config in the current directory
vscroll init

# Create it somewhere else
vscroll init --cwd ~/src/project
  `,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		needed, err := config.ProjectNeedsInitialization(cwd)
		if err != nil {
			return err
		}
		if !needed {
			fmt.Fprintf(cmd.OutOrStdout(), "Project in %s is already initialized\n", cwd)
			return nil
		}
		path, err := config.InitProject(cwd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
