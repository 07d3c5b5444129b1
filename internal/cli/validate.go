package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/io"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a definition file without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

func runValidate(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	def, err := io.Load(path)
	if err != nil {
		return err
	}
	d, unmatched, err := def.Build()
	if err != nil {
		return err
	}
	logger.Debug("validated definition", "path", path, "nodes", len(def.Nodes))

	printSuccess("%s is valid", path)
	if def.Title != "" {
		printKeyValue("title", def.Title)
	}
	policy := def.Policy
	if policy == "" {
		policy = "normal"
	}
	printKeyValue("policy", policy)
	printKeyValue("nodes", fmt.Sprint(d.Chain().Len()))
	printKeyValue("connections", fmt.Sprint(len(d.Connections())))

	for _, conn := range d.Connections() {
		if conn.Kind == route.Normal {
			continue
		}
		line := fmt.Sprintf("%s → %s %-5s %s", conn.Key.StartID, conn.Key.EndID, conn.Key.Side, kindStyle(conn.Kind).Render(conn.Kind.String()))
		if conn.Label != "" {
			line += " " + conn.Label
		}
		printInfo("%s", line)
	}
	for _, k := range unmatched {
		printWarning("override %s → %s (%s) matches no adjacent pair", k.StartID, k.EndID, k.Side)
	}
	printNextStep("Render it", "heatflow render "+path)
	return nil
}
