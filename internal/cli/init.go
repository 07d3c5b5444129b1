package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/io"
)

func (c *CLI) initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter definition (TropiCHeat sample)",
		Long: `Write the three-node TropiCHeat sample definition. The format follows the
file extension: .toml (default heatflow.toml), .yaml or .json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "heatflow.toml"
			if len(args) == 1 {
				path = args[0]
			}
			return runInit(path, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}
	if err := io.Save(path, io.Sample()); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	printNextStep("Render it", "heatflow render "+path)
	return nil
}
