// Package cli is the yearwheel command tree.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yearwheel/internal/config"
	"yearwheel/internal/log"
	"yearwheel/pkg/api"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

const rule = "────────────────────────────────────────"

// CLI holds the state shared by all commands.
type CLI struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
}

// Config returns the loaded configuration. It is nil before a command runs.
func (c *CLI) Config() *config.Config {
	return c.cfg
}

// Logger returns the configured logger.
func (c *CLI) Logger() *log.Logger {
	if c.logger == nil {
		return log.Default()
	}
	return c.logger
}

// initialize loads the configuration and sets up logging.
func (c *CLI) initialize(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.Log.Level
	if c.verbose {
		level = "debug"
	}
	c.logger = log.New(log.LogConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	log.SetDefault(c.logger)
	c.logger.Debug("config loaded", "path", path)
	return nil
}

// Extension adds a command that needs the CLI state, such as the viewer of
// the full binary.
type Extension func(*CLI) *cobra.Command

// NewRootCommand creates the root cobra command.
func NewRootCommand(ext ...Extension) *cobra.Command {
	c := &CLI{}

	root := &cobra.Command{
		Use:   "yearwheel",
		Short: "Circular year planner renderer",
		Long: fmt.Sprintf(`%s

Draws a year as a wheel: rings of dated activities around the month and
week bands, written as PNG or SVG.

%s
  yearwheel info plan.yaml
  yearwheel render plan.yaml -y 2025 -o plan.png
  yearwheel render plan.yaml --all --format svg
  yearwheel layout plan.yaml -y 2025
  yearwheel weeks 2026
  yearwheel import plan.yaml holidays.ics --ring events --activity public -o merged.yaml`,
			bold("yearwheel"), bold("EXAMPLES:")),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initialize(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (default is the user config dir)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(newInfoCommand(c))
	root.AddCommand(newRenderCommand(c))
	root.AddCommand(newOpsCommand(c))
	root.AddCommand(newLayoutCommand(c))
	root.AddCommand(newWeeksCommand(c))
	root.AddCommand(newValidateCommand(c))
	root.AddCommand(newImportCommand(c))
	root.AddCommand(newConfigCommand(c))
	for _, e := range ext {
		root.AddCommand(e(c))
	}
	return root
}

// Execute runs root and returns the process exit code.
func Execute(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), red("Error: ")+err.Error())
		return 1
	}
	return 0
}

func (c *CLI) open(path string) (*api.Document, error) {
	doc, err := api.Open(path)
	if err != nil {
		return nil, err
	}
	doc.SetLogger(c.Logger())
	return doc, nil
}

// pickYear returns year when set, else the first year of doc, else the
// current year.
func pickYear(doc *api.Document, year int) int {
	if year != 0 {
		return year
	}
	if years := doc.Years(); len(years) > 0 {
		return years[0]
	}
	return time.Now().Year()
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
