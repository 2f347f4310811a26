package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justyntemme/chopgo/pkg/plugin"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show plugin metadata",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	p := plugin.Registered()
	if p == nil {
		return plugin.ErrNoPlugin
	}
	info := p.GetInfo()
	if err := info.ValidateUID(); err != nil {
		return fmt.Errorf("plugin %s: %w", info.ID, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render(info.Name))
	fmt.Fprintln(w, renderTable(nil, [][]string{
		{"ID", info.ID},
		{"UUID", info.UUID()},
		{"Type", info.OpType},
		{"Label", info.OpLabel},
		{"Icon", info.OpIcon},
		{"Version", info.Version},
		{"Vendor", info.Vendor},
		{"Inputs", strconv.Itoa(int(info.MinInputs)) + " .. " + strconv.Itoa(int(info.MaxInputs))},
		{"API version", strconv.Itoa(int(plugin.APIVersion()))},
	}))
	return nil
}
