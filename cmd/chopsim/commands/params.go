package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/chopgo/pkg/framework/param"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the operator's parameters",
	Long: `List every parameter in declaration order with its kind, range,
default and current value. With -c or --set the values reflect those
assignments.`,
	Args: cobra.NoArgs,
	RunE: runParams,
}

var paramsSets []string

func init() {
	paramsCmd.Flags().StringArrayVar(&paramsSets, "set", nil, "set a parameter before listing, NAME=VALUE")
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, s := range paramsSets {
		if err := cfg.SetParameter(s); err != nil {
			return err
		}
	}

	inst, destroy, err := newInstance()
	if err != nil {
		return err
	}
	defer destroy()

	if err := applyParameters(inst, cfg); err != nil {
		return err
	}

	var rows [][]string
	for _, p := range inst.Parameters().All() {
		rows = append(rows, []string{
			p.Name,
			p.Label,
			p.Kind.String(),
			paramRange(p),
			p.FormatValue(p.DefaultValue),
			p.FormatValue(p.GetValue()),
			strconv.FormatBool(p.IsEnabled()),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Name", "Label", "Kind", "Range", "Default", "Value", "Enabled"},
		rows,
	))
	return nil
}

func paramRange(p *param.Parameter) string {
	switch p.Kind {
	case param.Menu:
		return strings.Join(p.MenuNames, " | ")
	case param.Pulse:
		return ""
	}
	return param.FloatFormatter(p.Min) + " .. " + param.FloatFormatter(p.Max)
}
