package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kmuro/fieldsim/internal/analysis"
	"github.com/kmuro/fieldsim/internal/automation"
	"github.com/kmuro/fieldsim/internal/config"
	"github.com/kmuro/fieldsim/internal/export"
	"github.com/kmuro/fieldsim/internal/metrics"
	"github.com/kmuro/fieldsim/internal/optim"
	"github.com/kmuro/fieldsim/internal/scene"
	"github.com/kmuro/fieldsim/internal/sim"
	"github.com/kmuro/fieldsim/internal/storage"
	"github.com/kmuro/fieldsim/internal/viz"
	"github.com/kmuro/fieldsim/internal/world"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	seed        int64
	count       int
	restitution float64
	gravity     float64
	arenaWidth  float64
	arenaHeight float64
	frameRate   int
	recordEvery int
	configFile  string
	preset      string
	// Trajectory and analysis options
	ballIndex int
	// SVG export options
	svgOut          string
	svgTrajectories bool
	// Ensemble options
	numRuns   int
	seedStart int64
	// Sweep options
	sweepMetric       string
	sweepRestitutions []float64
	sweepGravities    []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldsim",
		Short: "2D force-field and collision sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "record one frame per N steps")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-ball speed and total energy",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	trajCmd := &cobra.Command{
		Use:   "traj [run_id]",
		Short: "scatter plot of one ball's path",
		Args:  cobra.ExactArgs(1),
		RunE:  trajPlot,
	}
	trajCmd.Flags().IntVar(&ballIndex, "ball", 0, "ball index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "dominant oscillation frequency of one ball",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&ballIndex, "ball", 0, "ball index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "run.svg", "output file")
	exportSVGCmd.Flags().BoolVar(&svgTrajectories, "trajectories", false, "draw full trajectories instead of the final frame")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scene.NewRegistry().List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark a scene across timestep sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	benchCmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of balls")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scene]",
		Short: "run a scene under many seeds in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addSceneFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")
	ensembleCmd.Flags().Int64Var(&seedStart, "seed-start", 1, "first seed")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid-search restitution and gravity for the lowest metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScene,
	}
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "max_speed", "metric to minimize")
	sweepCmd.Flags().Float64SliceVar(&sweepRestitutions, "restitutions", []float64{0.2, 0.5, 0.8, 1.0}, "restitution grid")
	sweepCmd.Flags().Float64SliceVar(&sweepGravities, "gravities", []float64{0, 200, 400, 800}, "gravity grid")
	sweepCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	sweepCmd.Flags().Float64Var(&duration, "time", 5.0, "duration per grid point")
	sweepCmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of balls")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a YAML scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, trajCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, scenesCmd, presetsCmd,
		benchCmd, ensembleCmd, sweepCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of balls")
	cmd.Flags().Float64Var(&restitution, "restitution", config.DefaultRestitution, "ball restitution")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "downward field strength")
	cmd.Flags().Float64Var(&arenaWidth, "width", config.DefaultWidth, "arena width")
	cmd.Flags().Float64Var(&arenaHeight, "height", config.DefaultHeight, "arena height")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig assembles the effective config: preset, then config file,
// then explicit flags, most specific wins.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	sceneName := ""
	if len(args) > 0 {
		sceneName = args[0]
	}

	cfg := config.DefaultConfig()

	if preset != "" {
		if sceneName == "" {
			return nil, fmt.Errorf("--preset requires a scene argument")
		}
		p := config.GetPreset(sceneName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		*cfg = *p
		if cfg.FPS == 0 {
			cfg.FPS = config.DefaultFPS
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if sceneName != "" {
		cfg.Scene = sceneName
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("count") {
		cfg.Count = count
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Restitution = restitution
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}
	if cmd.Flags().Changed("width") {
		cfg.Arena.Width = arenaWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Arena.Height = arenaHeight
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.FPS = frameRate
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := scene.NewRegistry()
	w, err := registry.Build(cfg)
	if err != nil {
		return err
	}
	balls := storage.DescribeBalls(w)

	s := sim.New(w)
	for _, m := range registry.DefaultMetrics() {
		s.AddMetric(m)
	}

	simCfg := sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Seed:          cfg.Seed,
		ValidateState: true,
		RecordEvery:   recordEvery,
	}

	fmt.Printf("running %s scene (%d bodies, seed %d)...\n", cfg.Scene, len(balls), cfg.Seed)
	start := time.Now()

	result, err := s.RunConfig(context.Background(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	info := storage.RunInfo{
		Scene:       cfg.Scene,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Seed:        cfg.Seed,
		ArenaWidth:  cfg.Arena.Width,
		ArenaHeight: cfg.Arena.Height,
		Balls:       balls,
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, frames: %d\n", result.StepsTaken, len(result.Frames))
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(scene.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tBODIES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Balls),
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	numBalls := len(frames[0])
	maxPlots := 6
	if numBalls > maxPlots {
		numBalls = maxPlots
	}

	for i := 0; i < numBalls; i++ {
		speeds := make([]float64, len(frames))
		for j, frame := range frames {
			if i < len(frame) {
				speeds[j] = math.Hypot(frame[i].VX, frame[i].VY)
			}
		}
		graph := asciigraph.Plot(speeds,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("ball %d speed", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	energy := make([]float64, len(frames))
	for j, frame := range frames {
		for i, b := range frame {
			if i >= len(meta.Balls) || meta.Balls[i].Mass <= 0 {
				continue
			}
			energy[j] += 0.5 * meta.Balls[i].Mass * (b.VX*b.VX + b.VY*b.VY)
		}
	}
	graph := asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy"),
	)
	fmt.Println(graph)

	return nil
}

func trajPlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if ballIndex < 0 || ballIndex >= len(frames[0]) {
		return fmt.Errorf("ball index out of range (run has %d balls)", len(frames[0]))
	}

	fmt.Printf("trajectory: %s, ball %d\n\n", meta.ID, ballIndex)

	width, height := 70, 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// arena coordinates are y-down, same as terminal rows
	for i, frame := range frames {
		px := int(float64(width-1) * frame[ballIndex].X / meta.ArenaWidth)
		py := int(float64(height-1) * frame[ballIndex].Y / meta.ArenaHeight)
		if px < 0 || px >= width || py < 0 || py >= height {
			continue
		}
		if i < len(frames)/3 {
			canvas[py][px] = '.'
		} else if i < 2*len(frames)/3 {
			canvas[py][px] = 'o'
		} else {
			canvas[py][px] = '●'
		}
	}

	fmt.Print("┌")
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")
	for i := range canvas {
		fmt.Print("│")
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}
	fmt.Print("└")
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")
	fmt.Println("\nLegend: . = early, o = middle, ● = late")

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 4 || len(times) < 2 {
		return fmt.Errorf("not enough data to analyze")
	}
	if ballIndex < 0 || ballIndex >= len(frames[0]) {
		return fmt.Errorf("ball index out of range (run has %d balls)", len(frames[0]))
	}

	fmt.Printf("frequency analysis: %s, ball %d\n", meta.ID, ballIndex)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	data := make([]float64, len(frames))
	for i, frame := range frames {
		data[i] = frame[ballIndex].X
	}

	ps := analysis.PowerSpectrum(analysis.PadPow2(data))
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	sampleRate := 1.0 / (times[1] - times[0])
	freq, _ := analysis.DominantFrequency(data, sampleRate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0] {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, b := range frame {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.VX, 'f', 6, 64),
				strconv.FormatFloat(b.VY, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	info := storage.RunInfo{
		Scene:       meta.Scene,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Seed:        meta.Seed,
		ArenaWidth:  meta.ArenaWidth,
		ArenaHeight: meta.ArenaHeight,
		Balls:       meta.Balls,
	}
	result := &sim.Result{
		Times:   times,
		Frames:  frames,
		Metrics: meta.Metrics,
	}

	return storage.ExportJSON(os.Stdout, info, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to render")
	}

	var svg string
	if svgTrajectories {
		svg = export.TrajectoriesSVG(meta.ArenaWidth, meta.ArenaHeight, meta.Balls, frames)
	} else {
		svg = export.SceneSVG(meta.ArenaWidth, meta.ArenaHeight, meta.Balls, frames[len(frames)-1])
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	sceneName := "random"
	if len(args) > 0 {
		sceneName = args[0]
	}

	registry := scene.NewRegistry()

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{1.0 / 240, 1.0 / 60, 1.0 / 30}

	fmt.Printf("benchmarking %s (%d bodies)\n\n", sceneName, count)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, stepSize := range dts {
			cfg := config.DefaultConfig()
			cfg.Scene = sceneName
			cfg.Count = count
			cfg.Seed = 42
			cfg.Dt = stepSize
			cfg.Duration = dur

			world, err := registry.Build(cfg)
			if err != nil {
				return err
			}

			s := sim.New(world)
			simCfg := sim.Config{Dt: stepSize, Duration: dur, RecordEvery: 1 << 30}

			start := time.Now()
			result, err := s.RunConfig(context.Background(), simCfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, stepSize, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := scene.NewRegistry()
	if _, err := registry.Build(cfg); err != nil {
		return err
	}
	factory := func(runSeed int64) *world.World {
		runCfg := *cfg
		runCfg.Seed = runSeed
		w, buildErr := registry.Build(&runCfg)
		if buildErr != nil {
			panic(buildErr) // Build fails only on unknown scene names, checked above
		}
		return w
	}

	ensemble := sim.NewEnsemble(factory, numRuns, seedStart).
		WithMetrics(registry.DefaultMetrics)

	simCfg := sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
		RecordEvery:   1 << 30,
	}

	fmt.Printf("running %d seeds of %s...\n", numRuns, cfg.Scene)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	var names []string
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for i, result := range results {
		fmt.Fprintf(w, "%d", seedStart+int64(i))
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", result.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmean:")
	for _, name := range names {
		var sum float64
		for _, result := range results {
			sum += result.Metrics[name]
		}
		fmt.Printf("  %s: %.4f\n", name, sum/float64(len(results)))
	}

	return nil
}

func sweepScene(cmd *cobra.Command, args []string) error {
	sceneName := "random"
	if len(args) > 0 {
		sceneName = args[0]
	}

	registry := scene.NewRegistry()

	run := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		cfg := config.DefaultConfig()
		cfg.Scene = sceneName
		cfg.Seed = seed
		cfg.Duration = duration
		cfg.Count = count
		cfg.Restitution = params["restitution"]
		cfg.Gravity = params["gravity"]
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		w, err := registry.Build(cfg)
		if err != nil {
			return nil, err
		}

		s := sim.New(w)
		for _, m := range registry.DefaultMetrics() {
			s.AddMetric(m)
		}
		s.AddMetric(metrics.NewEnergyDrift())
		s.AddMetric(metrics.NewCalmness(50))

		result, err := s.RunConfig(ctx, sim.Config{
			Dt:            cfg.Dt,
			Duration:      cfg.Duration,
			ValidateState: true,
			RecordEvery:   1 << 30,
		})
		if err != nil {
			return nil, err
		}
		if len(result.Errors) > 0 {
			return nil, result.Errors[0]
		}
		return result.Metrics, nil
	}

	search := optim.NewGridSearch(
		[]string{"restitution", "gravity"},
		[][]float64{sweepRestitutions, sweepGravities},
	)

	points := len(sweepRestitutions) * len(sweepGravities)
	fmt.Printf("sweeping %s over %d grid points, minimizing %s...\n", sceneName, points, sweepMetric)
	start := time.Now()

	best, val, err := search.Search(context.Background(), run, sweepMetric)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	if best == nil {
		return fmt.Errorf("no grid point produced metric %q", sweepMetric)
	}

	fmt.Printf("best %s: %.4f\n", sweepMetric, val)
	fmt.Printf("  restitution: %g\n", best["restitution"])
	fmt.Printf("  gravity: %g\n", best["gravity"])
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), scenario, scene.NewRegistry(), st)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tSTEPS\tRUN ID")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, r.Step.Scene, r.Result.StepsTaken, runID)
	}
	return w.Flush()
}
