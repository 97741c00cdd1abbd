package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yearwheel/internal/config"
	"yearwheel/internal/ics"
	"yearwheel/pkg/api"
	"yearwheel/pkg/graphics"
	"yearwheel/pkg/layout"
	"yearwheel/pkg/model"
)

// renderFlags mirror the render section of the config. Flags left unset
// take the configured value.
type renderFlags struct {
	year        int
	size        int
	zoom        float64
	locale      string
	format      string
	background  string
	transparent bool
	noWeek      bool
	noMonth     bool
	noNames     bool
	rotation    float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.year, "year", "y", 0, "Year to draw (default: first year with items)")
	fl.IntVarP(&f.size, "size", "s", 2000, "Output size in pixels")
	fl.Float64VarP(&f.zoom, "zoom", "z", 100, "Zoom percentage the labels are fitted for")
	fl.StringVarP(&f.locale, "locale", "l", "sv", "Month name locale (sv, en)")
	fl.StringVarP(&f.format, "format", "f", "png", "Output format (png, svg)")
	fl.StringVar(&f.background, "background", "#FFFFFF", "Background color")
	fl.BoolVar(&f.transparent, "transparent", false, "Transparent background")
	fl.BoolVar(&f.noWeek, "no-week-ring", false, "Hide the week band")
	fl.BoolVar(&f.noMonth, "no-month-ring", false, "Hide the month band")
	fl.BoolVar(&f.noNames, "no-ring-names", false, "Hide ring names")
	fl.Float64Var(&f.rotation, "rotation", layout.DefaultRotationOffset, "Calendar rotation in degrees")
}

type renderSettings struct {
	opts   []api.Option
	format api.OutputFormat
	size   int
}

// renderSettings merges the config with the flags the user set. output
// picks the format by extension unless --format is given.
func (c *CLI) renderSettings(cmd *cobra.Command, f *renderFlags, output string) (renderSettings, error) {
	var rs renderSettings
	r := c.cfg.Render
	set := cmd.Flags().Changed

	if set("size") {
		r.Size = f.size
	}
	if set("zoom") {
		r.Zoom = f.zoom
	}
	if set("locale") {
		r.Locale = f.locale
	}
	if set("background") {
		r.Background = f.background
	}
	if set("rotation") {
		r.RotationOffset = f.rotation
	}
	if f.noWeek {
		r.ShowWeekRing = false
	}
	if f.noMonth {
		r.ShowMonthRing = false
	}
	if f.noNames {
		r.ShowRingNames = false
	}

	format := r.Format
	if set("format") {
		format = f.format
	} else if ext, err := api.ParseFormat(filepath.Ext(output)); err == nil {
		format = string(ext)
	}
	var err error
	if rs.format, err = api.ParseFormat(format); err != nil {
		return rs, err
	}
	if r.Size <= 0 {
		return rs, fmt.Errorf("size must be positive, got %d", r.Size)
	}

	rs.size = r.Size
	rs.opts = []api.Option{
		api.Size(r.Size),
		api.Zoom(r.Zoom),
		api.Locale(r.Locale),
		api.Rotation(r.RotationOffset),
		api.Format(rs.format),
	}
	if f.transparent {
		rs.opts = append(rs.opts, api.Transparent())
	} else if r.Background != "" {
		bg, err := graphics.ParseHex(r.Background)
		if err != nil {
			return rs, fmt.Errorf("background: %w", err)
		}
		rs.opts = append(rs.opts, api.Background(bg.RGBA()))
	}
	if !r.ShowWeekRing {
		rs.opts = append(rs.opts, api.NoWeekRing())
	}
	if !r.ShowMonthRing {
		rs.opts = append(rs.opts, api.NoMonthRing())
	}
	if !r.ShowRingNames {
		rs.opts = append(rs.opts, api.NoRingNames())
	}
	return rs, nil
}

func newInfoCommand(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "info <structure>",
		Short: "Show the rings, groups and years of a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			out := cmd.OutOrStdout()
			s := doc.Structure()
			printf(out, "File: %s\n%s\n", args[0], rule)
			if s.Title != "" {
				printf(out, "Title: %s\n", s.Title)
			}
			years := make([]string, 0, doc.PageCount())
			for _, y := range doc.Years() {
				years = append(years, strconv.Itoa(y))
			}
			printf(out, "Years: %s\n", strings.Join(years, ", "))
			printf(out, "Rings: %d (%d inner, %d outer visible)\n",
				len(s.Rings), len(s.VisibleRings(model.RingInner)), len(s.VisibleRings(model.RingOuter)))
			for _, r := range s.Rings {
				state := ""
				if !r.Visible {
					state = gray(" (hidden)")
				}
				printf(out, "  %-6s %s%s\n", r.Type, r.Name, state)
			}
			printf(out, "Activity groups: %d\n", len(s.ActivityGroups))
			printf(out, "Labels: %d\n", len(s.Labels))
			printf(out, "Items: %d\n", len(s.Items))
			return nil
		},
	}
}

func newRenderCommand(c *CLI) *cobra.Command {
	var (
		f      renderFlags
		output string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "render <structure>",
		Short: "Render a year to PNG or SVG",
		Long: `Render one year of a structure. With --all every year that has items
is written, the year is added to the output name.

Output "-" writes a single page to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			rs, err := c.renderSettings(cmd, &f, output)
			if err != nil {
				return err
			}

			var pages []*api.Page
			if all {
				if pages = doc.Pages(); len(pages) == 0 {
					return errors.New("structure has no dated items")
				}
			} else {
				p, err := doc.Page(pickYear(doc, f.year))
				if err != nil {
					return err
				}
				pages = []*api.Page{p}
			}
			if output == "-" && len(pages) > 1 {
				return errors.New("stdout takes a single page")
			}

			for _, p := range pages {
				name := outputName(output, args[0], p.Year(), rs.format, all)
				if err := writePage(cmd.OutOrStdout(), p, name, rs.opts); err != nil {
					return fmt.Errorf("render %d: %w", p.Year(), err)
				}
				if name != "-" {
					printf(cmd.ErrOrStderr(), "%s Saved %s (%s, %dx%d)\n", green("✓"), name, rs.format, rs.size, rs.size)
				}
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <structure>-<year>.<format>)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Render every year with items")
	return cmd
}

// outputName derives the file written for year.
func outputName(output, input string, year int, format api.OutputFormat, multi bool) string {
	if output == "-" {
		return output
	}
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return fmt.Sprintf("%s-%d.%s", base, year, format)
	}
	if multi {
		ext := filepath.Ext(output)
		return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(output, ext), year, ext)
	}
	return output
}

// writePage renders the whole page before touching name so a failed
// render leaves no partial file behind.
func writePage(stdout io.Writer, p *api.Page, name string, opts []api.Option) error {
	var buf bytes.Buffer
	if err := p.RenderTo(&buf, opts...); err != nil {
		return err
	}
	if name == "-" {
		_, err := buf.WriteTo(stdout)
		return err
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(name, buf.Bytes(), 0o644)
}

func newOpsCommand(c *CLI) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "ops <structure>",
		Short: "List the drawing operations of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			rs, err := c.renderSettings(cmd, &f, "")
			if err != nil {
				return err
			}
			p, err := doc.Page(pickYear(doc, f.year))
			if err != nil {
				return err
			}
			ops, err := p.Ops(rs.opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "=== %d Operations (%d total) ===\n\n", p.Year(), len(ops))
			for i, op := range ops {
				printf(out, "%4d: %s\n", i+1, op.String())
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newLayoutCommand(c *CLI) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "layout <structure>",
		Short: "Print ring boundaries and item placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			rs, err := c.renderSettings(cmd, &f, "")
			if err != nil {
				return err
			}
			p, err := doc.Page(pickYear(doc, f.year))
			if err != nil {
				return err
			}
			w, err := p.Wheel(rs.opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			center := w.Center()
			printf(out, "%s  size %d  center (%.1f, %.1f)\n%s\n", bold(strconv.Itoa(w.Year())), rs.size, center.X, center.Y, rule)

			b := w.Boundaries()
			printf(out, "%s\n", cyan("Rings"))
			for _, rb := range b.All() {
				printf(out, "  %-6s %-24s %8.1f → %8.1f\n", rb.Ring.Type, rb.Ring.Name, rb.StartRadius, rb.EndRadius)
			}
			if b.MonthRing != nil {
				printf(out, "  %-6s %-24s %8.1f → %8.1f\n", "band", "months", b.MonthRing.StartRadius, b.MonthRing.EndRadius)
			}
			if b.WeekRing != nil {
				printf(out, "  %-6s %-24s %8.1f → %8.1f\n", "band", "weeks", b.WeekRing.StartRadius, b.WeekRing.EndRadius)
			}

			placements := w.Placements()
			printf(out, "%s (%d placed, %d skipped)\n", cyan("Items"), len(placements), w.Skipped())
			for _, pl := range placements {
				printf(out, "  %-24s %-16s track %d/%d  %7.2f° → %7.2f°  %s → %s\n",
					pl.Item.Name, pl.Ring.Ring.Name, pl.Track+1, pl.Tracks,
					pl.StartAngle, pl.EndAngle, pl.Item.StartDate, pl.Item.EndDate)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newWeeksCommand(c *CLI) *cobra.Command {
	var (
		months bool
		locale string
	)
	cmd := &cobra.Command{
		Use:   "weeks <year>",
		Short: "List the ISO weeks and months of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil || year < 1 || year > 9999 {
				return fmt.Errorf("%w: %s", api.ErrInvalidYear, args[0])
			}
			if !cmd.Flags().Changed("locale") {
				locale = c.cfg.Render.Locale
			}

			out := cmd.OutOrStdout()
			printf(out, "%s: %d days, %d ISO weeks\n", bold(args[0]), layout.DaysInYear(year), layout.WeeksInYear(year))
			if months {
				for _, m := range layout.MonthSegments(year, locale) {
					printf(out, "  %-10s days %3d-%3d (%d)\n", m.Name, m.StartDay, m.EndDay, m.DaysInMonth)
				}
				return nil
			}
			for _, w := range layout.WeekSegments(year) {
				start := layout.WeekStart(year, w.Week)
				end := start.AddDate(0, 0, w.Days-1)
				printf(out, "  v%02d  %s → %s  days %4d..%4d\n",
					w.Week, model.FormatDate(start), model.FormatDate(end), w.StartDay, w.EndDay)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&months, "months", "m", false, "List months instead of weeks")
	cmd.Flags().StringVarP(&locale, "locale", "l", "sv", "Month name locale (sv, en)")
	return cmd
}

func newValidateCommand(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <structure>...",
		Short: "Check structures for invalid records and references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				s, err := model.LoadFile(path)
				if err != nil {
					failed++
					printf(out, "%s %s\n", red("✗"), path)
					for _, line := range strings.Split(err.Error(), "\n") {
						printf(out, "    %s\n", line)
					}
					c.Logger().Debug("validation failed", "path", path)
					continue
				}
				printf(out, "%s %s %s\n", green("✓"), path,
					gray(fmt.Sprintf("(%d rings, %d items)", len(s.Rings), len(s.Items))))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d structures are invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newImportCommand(c *CLI) *cobra.Command {
	var (
		output, ringID, activityID, timezone string
		year, maxOcc                         int
	)
	cmd := &cobra.Command{
		Use:   "import <structure> <calendar.ics>",
		Short: "Add the events of an iCalendar file as items",
		Long: `Import VEVENTs as items of one ring and activity group. Recurring events
are expanded over --year (or their first year); items with the same id are
replaced. The merged structure is written to --output, stdout by default.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imp := c.cfg.Import
			if ringID == "" {
				ringID = imp.RingID
			}
			if activityID == "" {
				activityID = imp.ActivityID
			}
			if maxOcc <= 0 {
				maxOcc = imp.MaxOccurrences
			}
			if timezone == "" {
				timezone = imp.Timezone
			}
			loc, err := ics.ParseLocation(timezone)
			if err != nil {
				return err
			}

			s, err := model.LoadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := s.Ring(ringID); err != nil {
				return err
			}
			if _, ok := s.ActivityGroup(activityID); !ok {
				return fmt.Errorf("unknown activity group: %q", activityID)
			}

			res, err := ics.ImportFile(args[1], ics.Options{
				RingID:         ringID,
				ActivityID:     activityID,
				Year:           year,
				MaxOccurrences: maxOcc,
				Location:       loc,
				Logger:         c.Logger(),
			})
			if err != nil {
				return err
			}
			if err := ics.Merge(s, res.Items); err != nil {
				return err
			}

			if err := writeStructure(cmd.OutOrStdout(), s, output); err != nil {
				return err
			}
			status := cmd.ErrOrStderr()
			printf(status, "%s Imported %d items into %s\n", green("✓"), len(res.Items), ringID)
			for _, uid := range res.Truncated {
				printf(status, "%s %s truncated at %d occurrences\n", yellow("!"), uid, maxOcc)
			}
			if res.Skipped > 0 {
				printf(status, "%s %d events skipped\n", yellow("!"), res.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output structure file")
	cmd.Flags().StringVar(&ringID, "ring", "", "Ring id of the imported items")
	cmd.Flags().StringVar(&activityID, "activity", "", "Activity group id of the imported items")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA zone for event dates")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Only import items touching this year")
	cmd.Flags().IntVar(&maxOcc, "max", 0, "Cap on occurrences per recurring event")
	return cmd
}

func writeStructure(stdout io.Writer, s *model.Structure, output string) error {
	if output == "" || output == "-" {
		return s.Encode(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newConfigCommand(c *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(c.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			printf(cmd.OutOrStdout(), "%s\n", path)
			return nil
		},
	})
	return cmd
}
