package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/config"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"github.com/san-kum/reaxsim/internal/md"
	"github.com/san-kum/reaxsim/internal/reaxff"
	"github.com/san-kum/reaxsim/internal/storage"
	"github.com/san-kum/reaxsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	ffName     string
	systemName string
	workers    int
	charges    string
	threshold  float64

	jsonOut bool
	save    bool

	scanAtoms  []int
	scanFrom   float64
	scanTo     float64
	scanPoints int

	dt          float64
	steps       int
	integrator  string
	temperature float64
	seed        int64
	replicas    int
	trace       bool

	logger = log.New(os.Stderr, "reaxsim: ", 0)
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "reaxsim",
		Short:        "reactive bond-order potential: energies, scans and molecular dynamics",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".reaxsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&ffName, "forcefield", "", "built-in force field or yaml path")
	pf.StringVar(&systemName, "system", config.DefaultSystem, "preset name or system yaml path")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "goroutines for the bond-order pass")
	pf.StringVar(&charges, "charges", reaxff.ChargesFixed.String(), "charge mode (fixed or eem)")
	pf.Float64Var(&threshold, "threshold", config.DefaultBondThreshold, "bond-order threshold for bond lists")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate energies, charges and bond orders of one geometry",
		Args:  cobra.NoArgs,
		RunE:  runEval,
	}
	evalCmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as json")
	evalCmd.Flags().BoolVar(&save, "save", false, "store the report under the data directory")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "scan the energy along one interatomic distance",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	scanCmd.Flags().IntSliceVar(&scanAtoms, "atoms", []int{0, 1}, "fixed atom and moved atom")
	scanCmd.Flags().Float64Var(&scanFrom, "from", config.DefaultScanFrom, "first distance (angstrom)")
	scanCmd.Flags().Float64Var(&scanTo, "to", config.DefaultScanTo, "last distance (angstrom)")
	scanCmd.Flags().IntVar(&scanPoints, "points", config.DefaultScanPoints, "number of distances")

	mdCmd := &cobra.Command{
		Use:   "md",
		Short: "run molecular dynamics with finite-difference forces",
		Args:  cobra.NoArgs,
		RunE:  runMD,
	}
	mdDefaults := md.DefaultConfig()
	mdCmd.Flags().Float64Var(&dt, "dt", mdDefaults.Dt, "timestep (fs)")
	mdCmd.Flags().IntVar(&steps, "steps", mdDefaults.Steps, "number of steps")
	mdCmd.Flags().StringVar(&integrator, "integrator", mdDefaults.Integrator, "integrator (verlet or leapfrog)")
	mdCmd.Flags().Float64Var(&temperature, "temperature", 0, "initial Maxwell-Boltzmann temperature (K), 0 keeps stored velocities")
	mdCmd.Flags().Int64Var(&seed, "seed", 1, "random seed for initial velocities")
	mdCmd.Flags().IntVar(&replicas, "replicas", config.DefaultReplicas, "independent replicas run concurrently")
	mdCmd.Flags().BoolVar(&trace, "trace", true, "plot the energy trace")
	mdCmd.Flags().BoolVar(&save, "save", false, "store the final report and trajectory")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "move atoms interactively and watch the energy terms",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "store the report, bond orders and system of one geometry",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored reports",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored report and its trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset systems and built-in force fields",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump-forcefield [path]",
		Short: "write the selected force field as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ff, err := cfg.LoadForceField()
			if err != nil {
				return err
			}
			return forcefield.Save(args[0], ff)
		},
	}

	rootCmd.AddCommand(evalCmd, scanCmd, mdCmd, exploreCmd, exportCmd, listCmd, showCmd, presetsCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the config file, if any, and applies every flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("forcefield") {
		cfg.ForceField = ffName
	}
	if flags.Changed("system") || configFile == "" {
		cfg.System = systemName
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("charges") {
		cfg.Charges = charges
	}
	if flags.Changed("threshold") {
		cfg.BondThreshold = threshold
	}
	if flags.Changed("atoms") {
		if len(scanAtoms) != 2 {
			return nil, fmt.Errorf("--atoms takes two indices, got %v", scanAtoms)
		}
		cfg.Scan.Atoms = [2]int{scanAtoms[0], scanAtoms[1]}
	}
	if flags.Changed("from") {
		cfg.Scan.From = scanFrom
	}
	if flags.Changed("to") {
		cfg.Scan.To = scanTo
	}
	if flags.Changed("points") {
		cfg.Scan.Points = scanPoints
	}
	if flags.Changed("dt") {
		cfg.MD.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.MD.Steps = steps
	}
	if flags.Changed("integrator") {
		cfg.MD.Integrator = integrator
	}
	if flags.Changed("temperature") {
		cfg.MD.Temperature = temperature
	}
	if flags.Changed("seed") || cfg.MD.Seed == 0 {
		cfg.MD.Seed = seed
	}
	if flags.Changed("replicas") {
		cfg.MD.Replicas = replicas
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves the force field and the system of cfg.
func setup(cfg *config.Config) (*forcefield.Repository, *atoms.System, reaxff.Options, error) {
	ff, err := cfg.LoadForceField()
	if err != nil {
		return nil, nil, reaxff.Options{}, err
	}
	sys, err := cfg.LoadSystem(ff)
	if err != nil {
		return nil, nil, reaxff.Options{}, err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, nil, reaxff.Options{}, err
	}
	return ff, sys, opts, nil
}

// runName labels stored runs: the preset name, or the system file name
// without its directory and extension.
func runName(cfg *config.Config) string {
	base := filepath.Base(cfg.System)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func symbolOf(ff *forcefield.Repository, sys *atoms.System) func(int) string {
	return func(i int) string { return ff.Type(sys.Atoms[i].Type).Symbol }
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ff, sys, opts, err := setup(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := reaxff.Evaluate(sys, ff, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	report := storage.NewReport(runName(cfg), sys, ff, res, cfg.BondThreshold, opts.Charges)
	if save {
		if err := saveReport(report, res.BondOrders(), nil); err != nil {
			return err
		}
	}
	if jsonOut {
		return storage.WriteJSON(os.Stdout, report)
	}

	fmt.Println(viz.GradientTitle.Render(fmt.Sprintf("%s: %d atoms", cfg.System, sys.Len())))
	fmt.Printf("force field: %s, charges: %s\n", ff.Name, opts.Charges)
	fmt.Printf("evaluated in %v\n\n", elapsed)
	fmt.Println(viz.EnergyTable(res.Energies))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ATOM\tTYPE\tCHARGE\tSUM BO\tDELTA'\tDELTA\tNLP")
	for _, a := range report.Atoms {
		fmt.Fprintf(w, "%d\t%s\t%+.4f\t%.4f\t%+.4f\t%+.4f\t%.4f\n",
			a.ID, a.Symbol, a.Charge, a.BondOrder, a.Deltap, a.Delta, a.Nlp)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.BondTable(res.BondOrders().Bonds(cfg.BondThreshold), symbolOf(ff, sys)))
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ff, sys, opts, err := setup(cfg)
	if err != nil {
		return err
	}

	i, j := cfg.Scan.Atoms[0], cfg.Scan.Atoms[1]
	if i < 0 || j < 0 || i >= sys.Len() || j >= sys.Len() {
		return fmt.Errorf("scan atoms %v out of range for %d atoms", cfg.Scan.Atoms, sys.Len())
	}

	rs := reaxff.Linspace(cfg.Scan.From, cfg.Scan.To, cfg.Scan.Points)
	points, err := reaxff.ScanDistance(sys, ff, opts, i, j, rs)
	if err != nil {
		return err
	}

	energies := make([]float64, len(points))
	best := 0
	for k, p := range points {
		energies[k] = p.Energies.Total()
		if energies[k] < energies[best] {
			best = k
		}
	}

	symbol := symbolOf(ff, sys)
	fmt.Printf("scan %s%d-%s%d in %s\n\n", symbol(i), i, symbol(j), j, cfg.System)
	fmt.Println(viz.ScanPlot(rs, energies, 12, 70))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "R\tBO\tBOND\tVDW\tCOULOMB\tTOTAL")
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			p.Distance, p.BondOrder, p.Energies.Bond, p.Energies.VdW, p.Energies.Coulomb, p.Energies.Total())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nminimum: %.6f kcal/mol at r = %.4f A\n", energies[best], rs[best])
	return nil
}

func runMD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ff, sys, _, err := setup(cfg)
	if err != nil {
		return err
	}
	settings, err := cfg.MDSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.MD.Replicas > 1 {
		return runEnsemble(ctx, cfg, ff, sys, settings)
	}

	if cfg.MD.Temperature > 0 {
		if err := md.MaxwellBoltzmann(sys, ff, cfg.MD.Temperature, cfg.MD.Seed); err != nil {
			return err
		}
	}

	logger.Printf("running %d %s steps of %.3f fs on %s (%d atoms)", cfg.MD.Steps, settings.Integrator, settings.Dt, cfg.System, sys.Len())
	start := time.Now()
	result, msys, err := md.Run(ctx, sys, ff, settings)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	last := result.Frames[len(result.Frames)-1]
	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, elapsed)
	fmt.Printf("final: E_kin %.6f  E_pot %.6f  E_tot %.6f kcal/mol  T %.2f K\n", last.Kinetic, last.Potential, last.Total, last.Temperature)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if trace {
		fmt.Println()
		fmt.Println(viz.EnergyTrace(result.Frames, 12, 70))
	}

	if save {
		snapshot := msys.Snapshot(result.Final)
		final, err := reaxff.Evaluate(snapshot, ff, settings.Engine)
		if err != nil {
			return err
		}
		report := storage.NewReport(runName(cfg), snapshot, ff, final, cfg.BondThreshold, settings.Engine.Charges)
		report.Metrics = result.Metrics
		return saveReport(report, final.BondOrders(), result.Frames)
	}
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config, ff *forcefield.Repository, sys *atoms.System, settings md.Config) error {
	ens := md.Ensemble{
		Replicas:    cfg.MD.Replicas,
		SeedStart:   cfg.MD.Seed,
		Temperature: cfg.MD.Temperature,
	}
	logger.Printf("running %d replicas at %.1f K", ens.Replicas, ens.Temperature)

	start := time.Now()
	results, err := ens.Run(ctx, sys, ff, settings)
	if err != nil {
		return err
	}
	fmt.Printf("completed %d replicas in %v\n\n", len(results), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPLICA\tSEED\tSTEPS\tDRIFT\tMEAN T\tE_TOT")
	for i, r := range results {
		last := r.Frames[len(r.Frames)-1]
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3e\t%.2f\t%.6f\n",
			i, ens.SeedStart+int64(i), r.StepsTaken, r.EnergyDrift, r.Metrics["mean_temperature"], last.Total)
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ff, sys, opts, err := setup(cfg)
	if err != nil {
		return err
	}

	m := viz.NewExplorer(cfg.System, sys, ff, opts, cfg.BondThreshold)
	if err := m.Err(); err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ff, sys, opts, err := setup(cfg)
	if err != nil {
		return err
	}
	res, err := reaxff.Evaluate(sys, ff, opts)
	if err != nil {
		return err
	}
	report := storage.NewReport(runName(cfg), sys, ff, res, cfg.BondThreshold, opts.Charges)
	return saveReport(report, res.BondOrders(), nil)
}

func saveReport(r *storage.Report, bo *reaxff.BondOrders, frames []md.Frame) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(r, bo, frames)
	if err != nil {
		return err
	}
	logger.Printf("saved run %s", id)
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
	fmt.Fprintln(w, "ID\tSYSTEM\tFORCEFIELD\tTIME\tATOMS\tBONDS\tTOTAL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.6f\n",
			run.ID,
			run.Name,
			run.ForceField,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Atoms),
			len(run.Bonds),
			run.Energies["total"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	report, err := st.Load(runID)
	if err != nil {
		return err
	}
	pairs, err := st.LoadBondOrders(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", report.ID)
	fmt.Printf("system: %s, force field: %s, charges: %s\n\n", report.Name, report.ForceField, report.Charges)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tENERGY")
	for _, name := range sortedKeys(report.Energies) {
		fmt.Fprintf(w, "%s\t%.6f\n", name, report.Energies[name])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "I\tJ\tBO\tSIGMA\tPI\tPIPI\tBO'")
	for _, p := range pairs {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n", p.I, p.J, p.Total, p.Sigma, p.Pi, p.PiPi, p.UncorrectedTotal)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	frames, err := st.LoadTrajectory(runID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(frames) > 0 {
		fmt.Println()
		fmt.Println(viz.EnergyTrace(frames, 12, 70))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "  %s\t%s\t%d atoms\t%s\n", name, p.ForceField, len(p.System.Atoms), p.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println("\nforce fields:")
	for _, name := range forcefield.BuiltinNames() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
