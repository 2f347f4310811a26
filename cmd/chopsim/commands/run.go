package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/justyntemme/chopgo/cmd/chopsim/internal/config"
	"github.com/justyntemme/chopgo/pkg/chop"
	"github.com/justyntemme/chopgo/pkg/framework/debug"
	"github.com/justyntemme/chopgo/pkg/host"
	"github.com/justyntemme/chopgo/pkg/plugin"
)

const sparkWidth = 60

var (
	runFrames  int
	runFPS     float64
	runSamples int32
	runSets    []string
	runPulses  []string
	runPreset  string
	runShow    string
	runProfile bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Cook frames and print the output",
	Long: `Cook the operator for a number of frames.

Parameters are set with --set NAME=VALUE using the text the parameter
dialog accepts (numbers for floats, entry names for menus). Pulses are
pressed with --pulse NAME@FRAME before that frame cooks.

--show selects what is printed per frame:
  samples  every sample of every channel (default)
  info     the info channels only
  none     nothing until the summary`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runFrames, "frames", "n", 0, "number of frames to cook (default from config, else 60)")
	runCmd.Flags().Float64Var(&runFPS, "fps", 0, "host frame rate (default from config, else 60)")
	runCmd.Flags().Int32Var(&runSamples, "samples", 0, "force a frame length instead of timeslicing")
	runCmd.Flags().StringArrayVar(&runSets, "set", nil, "set a parameter, NAME=VALUE (repeatable)")
	runCmd.Flags().StringArrayVar(&runPulses, "pulse", nil, "press a pulse, NAME@FRAME (repeatable)")
	runCmd.Flags().StringVar(&runPreset, "preset", "", "load a preset before applying --set")
	runCmd.Flags().StringVar(&runShow, "show", "samples", "per frame output: samples, info, none")
	runCmd.Flags().BoolVar(&runProfile, "profile", false, "report hook timings")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}
	switch runShow {
	case "samples", "info", "none":
	default:
		return fmt.Errorf("unknown --show %q", runShow)
	}

	inst, destroy, err := newInstance()
	if err != nil {
		return err
	}
	defer destroy()

	if runProfile {
		inst.EnableProfiling()
	}
	if runPreset != "" {
		if err := loadPreset(inst, runPreset); err != nil {
			return err
		}
	}
	if err := applyParameters(inst, cfg); err != nil {
		return err
	}

	h := host.New(inst, host.WithFPS(cfg.FPS), host.WithSamples(cfg.Samples))
	for _, name := range cfg.PulseNames() {
		for _, f := range cfg.Pulses[name] {
			h.SchedulePulse(f, name)
		}
	}
	if cfg.Input != nil {
		h.Connect(chop.NewInput(cfg.Input.Channels, cfg.Input.Rate))
	}

	w := cmd.OutOrStdout()
	var (
		names   []string
		history [][]float32
		last    host.Frame
	)
	err = h.Run(cfg.Frames, func(f host.Frame) error {
		names = f.ChannelNames
		if len(history) < len(f.Output.Channels) {
			history = append(history, make([][]float32, len(f.Output.Channels)-len(history))...)
		}
		for c, ch := range f.Output.Channels {
			history[c] = append(history[c], ch...)
		}
		last = f
		printFrame(w, f)
		return nil
	})
	if err != nil {
		return err
	}

	printSummary(w, names, history, last)
	if runProfile {
		budget := time.Duration(float64(time.Second) / cfg.FPS)
		fmt.Fprintln(w, titleStyle.Render("Profile"))
		fmt.Fprint(w, inst.Profiler().Report(budget))
	}
	return nil
}

// runConfig merges the config file with the command line.
func runConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Frames = runFrames
	}
	if flags.Changed("fps") {
		cfg.FPS = runFPS
	}
	if flags.Changed("samples") {
		cfg.Samples = runSamples
	}
	for _, s := range runSets {
		if err := cfg.SetParameter(s); err != nil {
			return nil, err
		}
	}
	for _, p := range runPulses {
		if err := cfg.AddPulse(p); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printFrame(w io.Writer, f host.Frame) {
	switch runShow {
	case "samples":
		for c, ch := range f.Output.Channels {
			fmt.Fprintf(w, "%4d %s %s\n", f.Index, f.ChannelNames[c], formatSamples(ch))
		}
	case "info":
		parts := make([]string, len(f.InfoChannels))
		for i, ic := range f.InfoChannels {
			parts[i] = ic.Name + "=" + strconv.FormatFloat(float64(ic.Value), 'g', 6, 32)
		}
		fmt.Fprintf(w, "%4d %s\n", f.Index, strings.Join(parts, " "))
	}
}

func formatSamples(samples []float32) string {
	parts := make([]string, len(samples))
	for i, v := range samples {
		parts[i] = strconv.FormatFloat(float64(v), 'f', 4, 32)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func printSummary(w io.Writer, names []string, history [][]float32, last host.Frame) {
	if len(history) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Channels"))
		for c, samples := range history {
			name := fmt.Sprintf("chan%d", c+1)
			if c < len(names) {
				name = names[c]
			}
			stats := debug.Analyze(samples)
			fmt.Fprintln(w, field(name, debug.Sparkline(samples, stats.Min, stats.Max, sparkWidth)))
			fmt.Fprintln(w, field("  stats", stats.String()))
		}
	}

	if len(last.InfoTable) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Info"))
		fmt.Fprintln(w, renderTable(nil, last.InfoTable))
	}
}

func loadPreset(inst *plugin.Instance, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	if err := inst.State().Load(f); err != nil {
		return fmt.Errorf("load preset %s: %w", path, err)
	}
	return nil
}
