// Command unitconv converts values between units from the command line.
//
//	unitconv convert 100 C F
//	unitconv best 1200 mm --system imperial
//	unitconv list length
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/alexshd/unitconv"
	"github.com/alexshd/unitconv/internal/config"
	"github.com/alexshd/unitconv/internal/logging"
	"github.com/alexshd/unitconv/measures"
	"github.com/alexshd/unitconv/registryfile"
	"github.com/alexshd/unitconv/sqlstore"
)

const version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Registry  string `name:"registry" short:"r" help:"Registry file (YAML or JSON)" default:"${registry}"`
	DB        string `name:"db" help:"SQLite registry database (takes precedence over --registry)" default:"${db}"`
	LogLevel  string `name:"log-level" help:"debug, info, warn or error" default:"${log_level}"`
	LogFormat string `name:"log-format" help:"tint or json" default:"${log_format}" enum:"tint,json"`
	Precision int    `name:"precision" short:"p" help:"Significant decimals in output" default:"${precision}"`

	Convert  ConvertCmd  `cmd:"" help:"Convert a value from one unit to another"`
	Best     BestCmd     `cmd:"" help:"Find the most readable unit for a value"`
	Describe DescribeCmd `cmd:"" help:"Describe a unit"`
	List     ListCmd     `cmd:"" help:"List units, optionally of one measure"`
	Abbrs    AbbrsCmd    `cmd:"" help:"List abbreviations, optionally of one measure"`
	Measures MeasuresCmd `cmd:"" help:"List measures"`
	Check    CheckCmd    `cmd:"" help:"Report structural problems in the registry"`
	Export   ExportCmd   `cmd:"" help:"Write the registry to a YAML file or SQLite database"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// App carries what every command needs.
type App struct {
	ctx    context.Context
	out    io.Writer
	logger *slog.Logger
	cli    *CLI

	reg *unitconv.Registry
}

// registry resolves the registry source: --db, then --registry, then the
// built-in measures.
func (a *App) registry() (*unitconv.Registry, error) {
	if a.reg != nil {
		return a.reg, nil
	}

	switch {
	case a.cli.DB != "":
		store, err := sqlstore.Open(a.ctx, a.cli.DB, sqlstore.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if a.reg, err = store.Load(a.ctx); err != nil {
			return nil, err
		}
		a.logger.Debug("registry loaded", "db", a.cli.DB)
	case a.cli.Registry != "":
		reg, err := registryfile.ReadFile(a.cli.Registry)
		if err != nil {
			return nil, err
		}
		a.reg = reg
		a.logger.Debug("registry loaded", "file", a.cli.Registry)
	default:
		a.reg = measures.Default()
	}

	return a.reg, nil
}

func (a *App) format(v float64) string {
	return humanize.FtoaWithDigits(v, a.cli.Precision)
}

// ConvertCmd converts VALUE from FROM to TO.
type ConvertCmd struct {
	Value float64 `arg:"" help:"Value to convert"`
	From  string  `arg:"" help:"Origin unit abbreviation"`
	To    string  `arg:"" help:"Destination unit abbreviation"`
}

func (c *ConvertCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	result, err := unitconv.MustNew(reg, c.Value).From(c.From).To(c.To)
	if err != nil {
		return err
	}

	app.logger.Debug("converted", "value", c.Value, "from", c.From, "to", c.To, "result", result)
	fmt.Fprintf(app.out, "%s %s\n", app.format(result), c.To)
	return nil
}

// BestCmd finds the most readable unit.
type BestCmd struct {
	Value   float64  `arg:"" help:"Value to convert"`
	From    string   `arg:"" help:"Origin unit abbreviation"`
	Exclude []string `help:"Abbreviations to skip" sep:","`
	CutOff  float64  `name:"cutoff" help:"Smallest acceptable result" default:"1"`
	System  string   `help:"System to search (default: the origin's)"`
}

func (c *BestCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	opts := []unitconv.BestOption{unitconv.WithCutOff(c.CutOff)}
	if len(c.Exclude) > 0 {
		opts = append(opts, unitconv.WithExclude(c.Exclude...))
	}
	if c.System != "" {
		opts = append(opts, unitconv.WithSystem(c.System))
	}

	best, err := unitconv.MustNew(reg, c.Value).From(c.From).ToBest(opts...)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no unit yields a value of at least %s", app.format(c.CutOff))
	}

	name := best.Plural
	if best.Value == 1 {
		name = best.Singular
	}
	fmt.Fprintf(app.out, "%s %s (%s)\n", app.format(best.Value), best.Unit, name)
	return nil
}

// DescribeCmd prints one unit.
type DescribeCmd struct {
	Abbr string `arg:"" help:"Unit abbreviation"`
}

func (c *DescribeCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	d, err := reg.Describe(c.Abbr)
	if err != nil {
		return err
	}
	return writeDescriptions(app.out, []unitconv.Description{d})
}

// ListCmd lists units.
type ListCmd struct {
	Measure string `arg:"" optional:"" help:"Measure name"`
}

func (c *ListCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	list, err := reg.List(c.Measure)
	if err != nil {
		return err
	}
	return writeDescriptions(app.out, list)
}

// AbbrsCmd lists abbreviations.
type AbbrsCmd struct {
	Measure string `arg:"" optional:"" help:"Measure name"`
}

func (c *AbbrsCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	if c.Measure != "" {
		if _, ok := reg.Measure(c.Measure); !ok {
			return &unitconv.MeasureNotFoundError{Measure: c.Measure}
		}
	}
	fmt.Fprintln(app.out, strings.Join(reg.Possibilities(c.Measure), "\n"))
	return nil
}

// MeasuresCmd lists measures.
type MeasuresCmd struct{}

func (c *MeasuresCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, strings.Join(reg.Measures(), "\n"))
	return nil
}

// CheckCmd reports registry issues.
type CheckCmd struct{}

func (c *CheckCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	issues := reg.Check()
	for _, issue := range issues {
		fmt.Fprintln(app.out, issue.String())
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d issue(s) found", len(issues))
	}

	fmt.Fprintf(app.out, "ok: %d measures, %d units\n", len(reg.Measures()), reg.Len())
	return nil
}

// ExportCmd writes the registry out.
type ExportCmd struct {
	Format string `help:"yaml or sqlite" enum:"yaml,sqlite" default:"yaml"`
	Out    string `help:"Output path" type:"path" required:""`
}

func (c *ExportCmd) Run(app *App) error {
	reg, err := app.registry()
	if err != nil {
		return err
	}

	switch c.Format {
	case "sqlite":
		store, err := sqlstore.Open(app.ctx, c.Out, sqlstore.WithLogger(app.logger))
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(app.ctx, reg); err != nil {
			return err
		}
	default:
		if err := registryfile.WriteFile(c.Out, reg); err != nil {
			return err
		}
	}

	app.logger.Info("registry exported", "format", c.Format, "path", c.Out, "units", reg.Len())
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Fprintf(app.out, "unitconv %s\n", version)
	return nil
}

func writeDescriptions(w io.Writer, list []unitconv.Description) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ABBR\tMEASURE\tSYSTEM\tSINGULAR\tPLURAL")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Abbr, d.Measure, d.System, d.Singular, d.Plural)
	}
	return tw.Flush()
}

// vars exposes environment configuration as kong defaults.
func vars(cfg config.Config) kong.Vars {
	return kong.Vars{
		"registry":   cfg.Registry,
		"db":         cfg.DB,
		"log_level":  cfg.LogLevel,
		"log_format": cfg.LogFormat,
		"precision":  strconv.Itoa(cfg.Precision),
	}
}

func newParser(cli *CLI, cfg config.Config, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("unitconv"),
		kong.Description("Convert measurements between units and systems"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
		kong.WithHyphenPrefixedParameters(true),
		vars(cfg),
	)
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var cli CLI
	parser, err := newParser(&cli, cfg, stdout, stderr)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(escapeNegatives(parser.Model, args))
	if err != nil {
		return err
	}

	logger, err := logging.Setup(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}

	app := &App{ctx: ctx, out: stdout, logger: logger, cli: &cli}
	return kctx.Run(app)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var unsupported *unitconv.UnsupportedUnitError
		if errors.As(err, &unsupported) {
			slog.Error("unsupported unit", "unit", unsupported.Abbr, "valid", strings.Join(unsupported.Valid, ", "))
		} else {
			slog.Error("unitconv failed", "err", err)
		}
		os.Exit(1)
	}
}
