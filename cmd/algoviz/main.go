package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/persist"
	"github.com/san-kum/algoviz/internal/run"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logFile    string

	algorithm string
	size      int
	speed     float64
	username  string
	serverURL string
	seed      int64
	preset    string
	theme     string

	valuesFlag string
	instant    bool
	framesDir  string
	svgPath    string
	record     bool
	quiet      bool

	addr      string
	storeKind string
	storePath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "algoviz",
		Short:         "animated sorting and graph traversal visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "algoviz.yaml", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", ".algoviz", "run archive directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&algorithm, "algorithm", config.DefaultAlgorithm, "algorithm (bubble, quick, merge, bfs, dfs)")
	pf.IntVar(&size, "size", 0, "array length or node count")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	pf.StringVar(&username, "user", "", "username for save and load")
	pf.StringVar(&serverURL, "server", config.DefaultServerURL, "persistence server URL; empty uses the local store")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&preset, "preset", "", "start from a named preset array")

	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	addStoreFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run one visualization headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&valuesFlag, "values", "", "comma separated input array")
	runCmd.Flags().BoolVar(&instant, "instant", false, "run on a virtual clock without sleeping")
	runCmd.Flags().StringVar(&framesDir, "frames", "", "write every frame as a PNG into this directory")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")
	runCmd.Flags().BoolVar(&record, "record", false, "archive the step log under --data")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress step messages")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "count steps and animation time across sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchAlgorithms,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the array persistence server",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	addStoreFlags(serveCmd)

	saveCmd := &cobra.Command{
		Use:   "save [values...]",
		Short: "save an array for --user",
		Args:  cobra.MinimumNArgs(1),
		RunE:  saveArray,
	}
	addStoreFlags(saveCmd)

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "print the array saved for --user",
		RunE:  loadArray,
	}
	addStoreFlags(loadCmd)

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "list users with saved arrays",
		RunE:  listUsers,
	}
	addStoreFlags(usersCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export an archived run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write the effective configuration to --config",
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(runCmd, benchCmd, serveCmd, saveCmd, loadCmd, usersCmd, listCmd, plotCmd, exportCmd, algorithmsCmd, presetsCmd, initCmd)
	return rootCmd
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&storeKind, "store", config.DefaultStore, "local store kind (file, sqlite, memory)")
	cmd.Flags().StringVar(&storePath, "store-path", config.DefaultDataPath, "local store path")
}

// loadConfig reads --config when present and applies explicitly set flags
// on top. A missing default config file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config"):
		default:
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("user") {
		cfg.Username = username
	}
	if flags.Changed("server") {
		cfg.Server.URL = serverURL
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if flags.Changed("store") {
		cfg.Server.Store = storeKind
	}
	if flags.Changed("store-path") {
		cfg.Server.Data = storePath
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(cfg.Log.Level, cfg.Log.File, w)
}

func newRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// openArrayStore returns the HTTP client when a server URL is configured
// and the local store otherwise.
func openArrayStore(cfg *config.Config) (run.ArrayStore, func(), error) {
	if cfg.Server.URL != "" {
		return persist.NewClient(cfg.Server.URL), func() {}, nil
	}
	st, err := persist.OpenStore(cfg.Server.Store, cfg.Server.Data)
	if err != nil {
		return nil, nil, err
	}
	return persist.Local{Store: st}, func() { _ = st.Close() }, nil
}

// initialValues resolves --values or the configured preset. Nil means
// generate at random.
func initialValues(cfg *config.Config, rng *rand.Rand) ([]int, string, error) {
	if valuesFlag != "" {
		values, err := parseValues(strings.Split(valuesFlag, ","))
		return values, "", err
	}
	if cfg.Preset != "" {
		p := config.GetPreset(cfg.Preset)
		return p.Build(cfg.Size, rng), fmt.Sprintf("Preset %s loaded.", p.Name), nil
	}
	return nil, "", nil
}

func parseValues(fields []string) ([]int, error) {
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}
