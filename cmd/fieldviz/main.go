package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/demo"
	"github.com/san-kum/fieldviz/internal/pipeline"
	"github.com/san-kum/fieldviz/internal/report"
	"github.com/san-kum/fieldviz/internal/scan"
	"github.com/san-kum/fieldviz/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// Job configuration
	configFile string
	preset     string
	prefix     string
	refPrefix  string
	diffMode   bool
	// Step selection
	stepFrom int
	stepTo   int
	stepBy   int
	stepList string
	// Domain
	exclude []string
	// Output
	title        string
	output       string
	intervalMs   int
	colormapName string
	scale        int
	// Single-frame render
	renderStep int
	renderOut  string
	// Report
	reportOut string
	// Demo dataset
	demoNx int
	demoNy int
)

// main registers the fieldviz commands and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldviz",
		Short: "animate and inspect solver snapshot series",
	}

	animateCmd := &cobra.Command{
		Use:   "animate [data-dir]",
		Short: "scan a snapshot series and encode it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnimate,
	}
	addJobFlags(animateCmd)
	animateCmd.Flags().StringVar(&output, "out", config.DefaultOutput, "output path (extension selects the encoder)")

	renderCmd := &cobra.Command{
		Use:   "render [data-dir]",
		Short: "render one snapshot as a still figure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addJobFlags(renderCmd)
	renderCmd.Flags().IntVar(&renderStep, "step", 0, "snapshot step to render")
	renderCmd.Flags().StringVar(&renderOut, "out", "frame.png", "output path (extension selects the encoder)")
	renderCmd.MarkFlagRequired("step")

	scanCmd := &cobra.Command{
		Use:   "scan [data-dir]",
		Short: "scan a series and print its global value range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	addJobFlags(scanCmd)

	statsCmd := &cobra.Command{
		Use:   "stats [data-dir]",
		Short: "per-step statistics table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	addJobFlags(statsCmd)

	reportCmd := &cobra.Command{
		Use:   "report [data-dir]",
		Short: "write an HTML statistics report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
	addJobFlags(reportCmd)
	reportCmd.Flags().StringVar(&reportOut, "out", "report.html", "report path")

	liveCmd := &cobra.Command{
		Use:   "live [data-dir]",
		Short: "play a series in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addJobFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  runPresets,
	}

	demoCmd := &cobra.Command{
		Use:   "demo [dir]",
		Short: "generate a synthetic dataset to try the pipeline",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDemo,
	}
	demoCmd.Flags().IntVar(&demoNx, "nx", 0, "grid width (0 for default)")
	demoCmd.Flags().IntVar(&demoNy, "ny", 0, "grid height (0 for default)")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a starter job config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}

	rootCmd.AddCommand(animateCmd, renderCmd, scanCmd, statsCmd, reportCmd, liveCmd, presetsCmd, demoCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addJobFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&prefix, "prefix", config.DefaultPrefix, "snapshot file prefix")
	f.StringVar(&refPrefix, "ref", "", "reference series prefix (implies difference mode)")
	f.BoolVar(&diffMode, "diff", false, "animate the squared difference of the two series")
	f.IntVar(&stepFrom, "from", 0, "first step")
	f.IntVar(&stepTo, "to", 0, "last step (inclusive)")
	f.IntVar(&stepBy, "by", 0, "step stride")
	f.StringVar(&stepList, "steps", "", "explicit comma-separated step list")
	f.StringArrayVar(&exclude, "exclude", nil, "grid point i,j to drop from the domain (repeatable)")
	f.StringVar(&title, "title", config.DefaultTitle, "color bar label")
	f.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "frame delay in milliseconds")
	f.StringVar(&colormapName, "colormap", config.DefaultColormap, "color map name")
	f.IntVar(&scale, "scale", config.DefaultScale, "pixels per grid cell (gif)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// buildJob assembles the job for a command: preset, then config file,
// then explicit flags, each layer overriding the one before it.
func buildJob(cmd *cobra.Command, args []string) (*config.Job, error) {
	job := config.DefaultJob()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		job = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		job = loaded
	}

	if len(args) > 0 {
		job.DataDir = args[0]
	}

	f := cmd.Flags()
	if f.Changed("prefix") {
		job.Prefix = prefix
	}
	if f.Changed("ref") {
		job.RefPrefix = refPrefix
		job.Mode = config.ModeDifference
	}
	if f.Changed("diff") {
		if diffMode {
			job.Mode = config.ModeDifference
		} else {
			job.Mode = config.ModeSeries
		}
	}
	if f.Changed("from") || f.Changed("to") || f.Changed("by") {
		job.Steps.List = nil
	}
	if f.Changed("from") {
		job.Steps.From = stepFrom
	}
	if f.Changed("to") {
		job.Steps.To = stepTo
	}
	if f.Changed("by") {
		job.Steps.By = stepBy
	}
	if f.Changed("steps") {
		steps, err := parseSteps(stepList)
		if err != nil {
			return nil, err
		}
		job.Steps.List = steps
	}
	if f.Changed("exclude") {
		points := make([][2]int, 0, len(exclude))
		for _, s := range exclude {
			p, err := parsePoint(s)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
		job.Exclude = points
	}
	if f.Changed("title") {
		job.Title = title
	}
	if f.Changed("interval") {
		job.IntervalMs = intervalMs
	}
	if f.Changed("colormap") {
		job.Colormap = colormapName
	}
	if f.Changed("scale") {
		job.Scale = scale
	}

	return job, nil
}

func parseSteps(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	steps := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad step %q in --steps", p)
		}
		steps = append(steps, v)
	}
	return steps, nil
}

func parsePoint(s string) ([2]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("bad exclude point %q, want i,j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return [2]int{}, fmt.Errorf("bad exclude point %q, want i,j", s)
	}
	j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return [2]int{}, fmt.Errorf("bad exclude point %q, want i,j", s)
	}
	return [2]int{i, j}, nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("out") {
		job.Output = output
	}
	run, err := pipeline.New(job)
	if err != nil {
		return err
	}

	fmt.Printf("scanning %d steps in %s...\n", len(run.Steps()), job.DataDir)
	start := time.Now()
	res, err := run.Animate(pipeline.Progress{
		OnRange: func(r scan.Range) {
			fmt.Printf("[global] min=%g, max=%g\n", r.Min, r.Max)
			fmt.Printf("saving animation to %s ...\n", job.Output)
		},
		OnFrame: func(done, total, step int) {
			if done == total || done%25 == 0 {
				fmt.Printf("  frame %d/%d (t = %d)\n", done, total, step)
			}
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("wrote %s (%d frames, %d active points)\n", res.Output, len(res.Steps), res.Active)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	run, err := pipeline.New(job)
	if err != nil {
		return err
	}
	res, err := run.RenderStep(renderStep, renderOut, pipeline.Progress{
		OnRange: func(r scan.Range) {
			fmt.Printf("[step %d] min=%g, max=%g\n", renderStep, r.Min, r.Max)
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", res.Output)
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	run, err := pipeline.New(job)
	if err != nil {
		return err
	}
	rng, err := run.ScanRange()
	if err != nil {
		return err
	}
	fmt.Printf("steps: %d\n", len(run.Steps()))
	fmt.Printf("active points: %d\n", run.Active())
	fmt.Printf("[global] min=%g, max=%g\n", rng.Min, rng.Max)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	run, err := pipeline.New(job)
	if err != nil {
		return err
	}
	stats, err := run.Stats()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMIN\tMAX\tMEAN\tSTDDEV\tN")
	means := make([]float64, len(stats))
	for i, s := range stats {
		means[i] = s.Mean
		fmt.Fprintf(w, "%d\t%.6g\t%.6g\t%.6g\t%.6g\t%d\n",
			s.Step, s.Min, s.Max, s.Mean, s.StdDev, s.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(means) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(means,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean per step"),
		)
		fmt.Println(graph)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	run, err := pipeline.New(job)
	if err != nil {
		return err
	}
	fmt.Printf("scanning %d steps in %s...\n", len(run.Steps()), job.DataDir)
	stats, err := run.Stats()
	if err != nil {
		return err
	}
	if err := report.WriteFile(reportOut, job.Title, stats); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d steps)\n", reportOut, len(stats))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	run, err := pipeline.New(job)
	if err != nil {
		return err
	}
	fmt.Printf("scanning %d steps in %s...\n", len(run.Steps()), job.DataDir)
	rng, err := run.ScanRange()
	if err != nil {
		return err
	}
	fmt.Printf("[global] min=%g, max=%g\n", rng.Min, rng.Max)

	m := tui.NewModel(run.Steps(), run.Loader(), rng, job.Title, job.Interval())
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tDATA\tSTEPS\tOUTPUT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d..%d/%d\t%s\n",
			name, p.Mode, p.DataDir, p.Steps.From, p.Steps.To, p.Steps.By, p.Output)
	}
	return w.Flush()
}

func runDemo(cmd *cobra.Command, args []string) error {
	dir := "demo_data"
	if len(args) > 0 {
		dir = args[0]
	}
	steps, err := demo.Generate(demo.Options{Dir: dir, Nx: demoNx, Ny: demoNy})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d steps to %s\n\n", len(steps), dir)
	fmt.Println("try:")
	fmt.Printf("  fieldviz animate %s --prefix solution --from %d --to %d --by %d --out demo.gif\n",
		dir, steps[0], steps[len(steps)-1], steps[1]-steps[0])
	fmt.Printf("  fieldviz animate %s --prefix exact --ref solution --from %d --to %d --by %d --title Error --out demo_error.gif\n",
		dir, steps[0], steps[len(steps)-1], steps[1]-steps[0])
	fmt.Printf("  fieldviz live %s --prefix exact --from %d --to %d --by %d\n",
		dir, steps[0], steps[len(steps)-1], steps[1]-steps[0])
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "fieldviz.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	job := config.DefaultJob()
	job.DataDir = "data"
	job.Steps = config.StepRange{From: 20, To: 2000, By: 20}
	if err := config.Save(path, job); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
