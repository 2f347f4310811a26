package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/justyntemme/chopgo/pkg/framework/param"
	"github.com/justyntemme/chopgo/pkg/framework/state"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Save and inspect parameter presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save FILE",
	Short: "Write the current parameters to a preset file",
	Long: `Create an instance, apply -c and --set assignments, and save its
parameter values. Pulses are not saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetSave,
}

var presetShowCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print the contents of a preset file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetShow,
}

var presetSets []string

func init() {
	presetSaveCmd.Flags().StringArrayVar(&presetSets, "set", nil, "set a parameter before saving, NAME=VALUE")

	presetCmd.AddCommand(presetSaveCmd, presetShowCmd)
	rootCmd.AddCommand(presetCmd)
}

func runPresetSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, s := range presetSets {
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

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	if err := inst.State().Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), field("saved", args[0]))
	return nil
}

func runPresetShow(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	p, err := state.Decode(f)
	if err != nil {
		return fmt.Errorf("preset %s: %w", args[0], err)
	}

	names := make([]string, 0, len(p.Values))
	for name := range p.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, param.FloatFormatter(p.Values[name])})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, field("plugin", p.Plugin))
	fmt.Fprintln(w, field("version", fmt.Sprint(p.Version)))
	fmt.Fprintln(w, renderTable([]string{"Parameter", "Value"}, rows))
	return nil
}
