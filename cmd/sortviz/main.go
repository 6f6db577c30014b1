package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/race"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	envFile    string
	logLevel   string
	size       int
	fps        int
	pacing     float64
	seed       int64
	theme      string
	algos      []string
	// race only
	timeout time.Duration
	noSave  bool
	noPlot  bool
	// export-json only
	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "concurrent sorting race visualizer",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with SORTVIZ_* overrides")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.IntVar(&size, "size", config.DefaultSize, "list size")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "sampling rate")
	pf.Float64Var(&pacing, "pacing", config.DefaultPacing, "pacing scale (0 disables delays)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringSliceVar(&algos, "algos", nil, "roster of strategy ids (default all)")

	raceCmd := &cobra.Command{
		Use:   "race",
		Short: "run one generation headlessly and report",
		RunE:  runRace,
	}
	raceCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "stop unfinished slots after this long")
	raceCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	raceCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip progress plots")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved races",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved race",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved race as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	algosCmd := &cobra.Command{
		Use:   "algos",
		Short: "list strategy ids and labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := sorting.NewRegistry(sorting.DefaultOptions())
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tMAX DELAY")
			for _, id := range reg.List() {
				s, _ := reg.Get(id)
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, s.Label(), s.MaxDelay())
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tVALUES\tPACING\tTHEME\tALGORITHMS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				roster := "all"
				if len(p.Algorithms) > 0 {
					roster = strings.Join(p.Algorithms, ",")
				}
				fmt.Fprintf(w, "%s\t%d\t%d..%d\t%.2f\t%s\t%s\n",
					name, p.Size, p.MinValue, p.MaxValue, p.Pacing, p.Theme, roster)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(raceCmd, listCmd, showCmd, exportJSONCmd, algosCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file, environment and changed
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(envFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("pacing") {
		cfg.Pacing = pacing
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("algos") {
		cfg.Algorithms = algos
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func newSupervisor(cfg *config.Config, log zerolog.Logger) (*engine.Supervisor, error) {
	reg := sorting.NewRegistry(sorting.Options{LatencyUnit: cfg.LatencyUnit()})
	roster, err := reg.Roster(cfg.Algorithms)
	if err != nil {
		return nil, err
	}
	return engine.New(roster, engine.Options{
		Pacer:  sorting.Pacer{Scale: cfg.Pacing},
		Grace:  cfg.Grace(),
		Seed:   cfg.Seed,
		Logger: log,
	}), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the renderer; logs go to a file.
	log, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Output:   "file",
		FilePath: filepath.Join(cfg.DataDir, "sortviz.log"),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	th, ok := tui.GetTheme(cfg.Theme)
	if !ok {
		log.Warn().Str("theme", cfg.Theme).Strs("available", tui.ThemeNames()).Msg("unknown theme, using classic")
	}

	sup, err := newSupervisor(cfg, log)
	if err != nil {
		return err
	}
	defer sup.Stop()

	m := tui.NewModel(sup, tui.Options{
		FPS:      cfg.FPS,
		Size:     cfg.Size,
		MinValue: cfg.MinValue,
		MaxValue: cfg.MaxValue,
		Seed:     cfg.Seed,
		Theme:    th,
		Logger:   log,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runRace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: "console", Output: "stderr"})
	if err != nil {
		return err
	}
	defer closer.Close()

	sup, err := newSupervisor(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rng := rand.New(rand.NewSource(cfg.Seed))
	data := dataset.Generate(rng, cfg.Size, cfg.MinValue, cfg.MaxValue)

	fmt.Printf("racing %d strategies on %d values (seed %d, pacing %.2f)\n\n", len(sup.Slots()), len(data), cfg.Seed, cfg.Pacing)
	res, err := race.Run(ctx, sup, data, race.Options{FPS: cfg.FPS, Timeout: timeout, Logger: log})
	if err != nil && res == nil {
		return err
	}

	printSlots(os.Stdout, res)
	if !noPlot {
		for i, s := range res.Slots {
			plotSeries(res.SlotSeries(i), s.Label)
		}
	}

	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunParams{
			Seed:       cfg.Seed,
			Size:       cfg.Size,
			MinValue:   cfg.MinValue,
			MaxValue:   cfg.MaxValue,
			FPS:        cfg.FPS,
			Pacing:     cfg.Pacing,
			Algorithms: cfg.Algorithms,
		}, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return err
}

func printSlots(out io.Writer, res *race.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tLABEL\tSTATUS\tELAPSED\tLENGTH\tSORTED\tSTEPS")
	for _, s := range res.Slots {
		elapsed := "-"
		if s.Status != race.StatusUnfinished {
			elapsed = s.Elapsed.Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%t\t%d\n",
			s.Slot, s.Label, s.Status, elapsed, len(s.Final), s.Sorted, s.Publishes)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d/%d complete in %s over %d frames", res.Completed(), len(res.Slots),
		res.Duration.Round(time.Millisecond), res.Frames)
	if res.TimedOut {
		fmt.Fprint(out, " (timed out)")
	}
	fmt.Fprint(out, "\n\n")
}

func plotSeries(data []float64, caption string) {
	if len(data) < 2 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Width(60),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption(caption+" sortedness"),
	)
	fmt.Println(graph)
	fmt.Println()
}

// openStore resolves the data directory through the same layers as a race.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSLOTS\tCOMPLETE\tDURATION\tPACING")

	for _, run := range runs {
		complete := 0
		for _, s := range run.Slots {
			if s.Status == race.StatusComplete {
				complete++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.0fms\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			len(run.Slots),
			complete,
			run.DurationMS,
			run.Pacing,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	progress, _, err := st.LoadProgress(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("size: %d (values %d..%d)\n", meta.Size, meta.MinValue, meta.MaxValue)
	fmt.Printf("seed: %d  pacing: %.2f  fps: %d\n", meta.Seed, meta.Pacing, meta.FPS)
	fmt.Printf("frames: %d  timed out: %t\n\n", meta.Frames, meta.TimedOut)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tSTATUS\tELAPSED\tLENGTH\tSORTED\tERROR")
	for _, s := range meta.Slots {
		fmt.Fprintf(w, "%s\t%s\t%.0fms\t%d\t%t\t%s\n", s.Label, s.Status, s.ElapsedMS, s.Length, s.Sorted, s.Error)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	for i, label := range meta.Labels() {
		plotSeries(storage.Series(progress, i), label)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}
