package main

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lspline/internal/analysis"
	"github.com/san-kum/lspline/internal/config"
	"github.com/san-kum/lspline/internal/experiment"
	"github.com/san-kum/lspline/internal/export"
	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/operator"
	"github.com/san-kum/lspline/internal/storage"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/san-kum/lspline/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	p, q       []float64
	rate       float64
	horizon    float64
	step       float64
	seed       int64
	algebra    string
	precision  uint
	span       float64
	splineStep float64
	plot       bool
	exportFmt  string
	save       bool
	runs       int
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lspline",
		Short:         "simulate generalized Lévy processes driven by impulsive noise",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lspline", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	sampleCmd := &cobra.Command{
		Use:   "sample [operator] [law]",
		Short: "draw one realization and sample its path",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runSample,
	}
	addRunFlags(sampleCmd)
	sampleCmd.Flags().BoolVar(&plot, "plot", false, "plot the grid path")
	sampleCmd.Flags().StringVar(&exportFmt, "export", "", "write the run to stdout as csv, json or svg")
	sampleCmd.Flags().BoolVar(&save, "save", false, "save the run under the data directory")

	greenCmd := &cobra.Command{
		Use:   "green [operator]",
		Short: "show the Green's function and B-spline of an operator",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGreen,
	}
	addOperatorFlags(greenCmd)
	greenCmd.Flags().Float64Var(&span, "span", 5, "plot Green's function on [-span, span]")
	greenCmd.Flags().Float64Var(&splineStep, "spline-step", 0.5, "discretization step of the B-spline")

	discretizeCmd := &cobra.Command{
		Use:   "discretize [operator]",
		Short: "print the discrete filter of an operator",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiscretize,
	}
	addOperatorFlags(discretizeCmd)
	discretizeCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "discretization step")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [operator] [law]",
		Short: "pointwise mean and variance over independent runs",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 200, "number of runs")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	ensembleCmd.Flags().StringVar(&exportFmt, "export", "", "write the result to stdout as csv or json")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	liveCmd := &cobra.Command{
		Use:   "live [operator] [law]",
		Short: "interactive viewer",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [operator]",
		Short: "list operator families, or the laws available for one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family := ""
			if len(args) == 1 {
				family = args[0]
			}
			for _, name := range config.ListPresets(family) {
				if op, ok := config.Operators[name]; ok {
					fmt.Printf("%-12s P=%v Q=%v\n", name, op.P, op.Q)
				} else {
					fmt.Println(name)
				}
			}
			return nil
		},
	}

	lawsCmd := &cobra.Command{
		Use:   "laws",
		Short: "list jump laws",
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range law.Kinds() {
				fmt.Println(k)
			}
		},
	}

	rootCmd.AddCommand(sampleCmd, ensembleCmd, greenCmd, discretizeCmd, analyzeCmd, listCmd, liveCmd, presetsCmd, lawsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addOperatorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64SliceVar(&p, "p", nil, "characteristic polynomial, highest degree first")
	cmd.Flags().Float64SliceVar(&q, "q", nil, "numerator polynomial, highest degree first")
	cmd.Flags().StringVar(&algebra, "algebra", config.DefaultAlgebra, "polynomial backend (float, big)")
	cmd.Flags().UintVar(&precision, "precision", 0, "mantissa bits of the big backend")
}

func addRunFlags(cmd *cobra.Command) {
	addOperatorFlags(cmd)
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "Poisson intensity")
	cmd.Flags().Float64Var(&horizon, "horizon", config.DefaultHorizon, "time horizon")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "grid step")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
}

// resolveConfig layers defaults, a preset or config file, then the flags
// the user actually set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case len(args) > 0:
		lawName := "gaussian"
		if len(args) > 1 {
			lawName = args[1]
		}
		preset := config.GetPreset(args[0], lawName)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset %s/%s (see lspline presets)", args[0], lawName)
		}
		cfg = preset
	}

	flags := cmd.Flags()
	if flags.Changed("p") {
		cfg.Operator.P = p
	}
	if flags.Changed("q") {
		cfg.Operator.Q = q
	}
	if flags.Changed("algebra") {
		cfg.Algebra = algebra
	}
	if flags.Changed("precision") {
		cfg.Precision = precision
	}
	if flags.Changed("rate") {
		cfg.Rate = rate
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	res, err := exp.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	switch exportFmt {
	case "":
	case "csv":
		return export.WriteCSV(os.Stdout,
			export.Column{Name: "path", Series: res.Path},
			export.Column{Name: "continuous", Series: res.Continuous})
	case "json":
		return export.WriteJSON(os.Stdout, res)
	case "svg":
		return export.SVG(os.Stdout, res.Path, res.Impulses.Stems(), 800, 400)
	default:
		return fmt.Errorf("unknown export format %q (want csv, json or svg)", exportFmt)
	}

	fmt.Printf("operator: %s\n", exp.Operator())
	fmt.Printf("law:      %s, rate %g\n", exp.Process().Law(), cfg.Rate)
	fmt.Printf("impulses: %d on [0, %g)\n", len(res.Impulses), cfg.Horizon)
	fmt.Printf("path:     %s\n", res.Summary)

	if plot && res.Path.Len() > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(res.Path.Values,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("grid path, step %g", cfg.Step)),
		))
	}

	if save {
		st := storage.New(dataDir)
		runID, err := st.Save(*cfg, res)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("saved:    %s\n", runID)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ens, err := experiment.RunEnsemble(cmd.Context(), cfg, runs, workers)
	if err != nil {
		return fmt.Errorf("ensemble failed: %w", err)
	}

	switch exportFmt {
	case "":
	case "csv":
		return export.WriteCSV(os.Stdout,
			export.Column{Name: "mean", Series: ens.Mean},
			export.Column{Name: "variance", Series: ens.Variance})
	case "json":
		return export.WriteJSON(os.Stdout, ens)
	default:
		return fmt.Errorf("unknown export format %q (want csv or json)", exportFmt)
	}

	fmt.Printf("runs:          %d\n", ens.Runs)
	fmt.Printf("mean impulses: %.2f (expected %.2f)\n", ens.MeanImpulses, cfg.Rate*cfg.Horizon)
	if ens.Variance.Len() > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ens.Mean.Values,
			asciigraph.Height(8), asciigraph.Width(80), asciigraph.Caption("pointwise mean")))
		fmt.Println()
		fmt.Println(asciigraph.Plot(ens.Variance.Values,
			asciigraph.Height(8), asciigraph.Width(80), asciigraph.Caption("pointwise variance")))
	}
	return nil
}

func buildOperator(cmd *cobra.Command, args []string) (*config.Config, *operator.Operator, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	op, err := cfg.BuildOperator()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range op.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return cfg, op, nil
}

func runGreen(cmd *cobra.Command, args []string) error {
	_, op, err := buildOperator(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("operator: %s\n\n", op)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POLE\tMULT\tCOEF\tSIDE")
	for _, c := range op.Components() {
		side := "causal"
		if !c.Causal() {
			side = "anticausal"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", formatComplex(c.Pole), c.Multiplicity, formatComplex(c.Coef), side)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if d := op.Direct(); len(d) > 0 {
		fmt.Printf("direct term %v dropped\n", d)
	}

	if span <= 0 {
		return fmt.Errorf("span must be positive")
	}
	xs := stoch.Arange(-span, span, span/100)
	green := make([]float64, len(xs))
	for i, x := range xs {
		green[i] = op.Green(x)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(green, asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("Green's function on [-%g, %g)", span, span))))

	d, err := op.Discretize(splineStep)
	if err != nil {
		return err
	}
	lo := math.Min(-d.Support(), -splineStep)
	hi := 2*d.Support() + splineStep
	xs = stoch.Arange(lo, hi, (hi-lo)/100)
	bs := make([]float64, len(xs))
	for i, x := range xs {
		if bs[i], err = d.BSpline(x); err != nil {
			return err
		}
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(bs, asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("B-spline, step %g, support %g", d.Step(), d.Support()))))
	return nil
}

func runDiscretize(cmd *cobra.Command, args []string) error {
	cfg, op, err := buildOperator(cmd, args)
	if err != nil {
		return err
	}
	d, err := op.Discretize(cfg.Step)
	if err != nil {
		return err
	}

	fmt.Printf("operator: %s\n", op)
	fmt.Printf("step:     %g\n", d.Step())
	fmt.Printf("support:  %g\n", d.Support())
	fmt.Printf("algebra:  %s\n", op.Algebra().Name())
	fmt.Printf("stable:   %v\n\n", d.Stable())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\tTAP")
	for k, tap := range d.Taps() {
		fmt.Fprintf(w, "%d\t%s\n", k, formatComplex(tap))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "POLE\t|POLE|")
	for _, z := range d.Poles() {
		fmt.Fprintf(w, "%s\t%.6g\n", formatComplex(z), cmplx.Abs(z))
	}
	return w.Flush()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	path, cont, err := st.LoadPaths(runID)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("operator P=%v law %s rate %g\n\n", meta.Config.Operator.P, meta.Config.Law.Name, meta.Config.Rate)

	spec, err := analysis.PowerSpectrum(path)
	if err != nil {
		return err
	}
	plotData := spec.Power[1:]
	if len(plotData) > 4 {
		plotData = plotData[:len(plotData)/4]
	}
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (grid path)"),
	))
	fmt.Println()

	freq, err := analysis.DominantFrequency(path)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	if n := cont.Len(); n > 0 {
		gap, err := analysis.Compare(stoch.Series{Values: path.Values[:n]}, cont)
		if err == nil {
			fmt.Printf("max |grid - continuous|: %.3g\n", gap)
		}
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
	fmt.Fprintln(w, "ID\tTIME\tP\tLAW\tRATE\tHORIZON\tSTEP\tIMPULSES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%g\t%g\t%g\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Operator.P,
			run.Config.Law.Name,
			run.Config.Rate,
			run.Config.Horizon,
			run.Config.Step,
			run.Impulses,
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(viz.NewModel(exp), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

func formatComplex(z complex128) string {
	if imag(z) == 0 {
		return fmt.Sprintf("%.6g", real(z))
	}
	sign := "+"
	if imag(z) < 0 {
		sign = "-"
	}
	return strings.TrimSpace(fmt.Sprintf("%.6g %s %.6gi", real(z), sign, math.Abs(imag(z))))
}
