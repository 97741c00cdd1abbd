package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yearwheel/internal/cli"
	"yearwheel/internal/gui"
)

func main() {
	root := cli.NewRootCommand(viewCommand)

	// A structure file as the only argument opens the viewer.
	if len(os.Args) == 2 && isStructure(os.Args[1]) {
		root.SetArgs([]string{"view", os.Args[1]})
	}
	os.Exit(cli.Execute(root))
}

func isStructure(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func viewCommand(c *cli.CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "view [structure]",
		Short: "Open the desktop viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := c.Config().Render
			app := gui.NewApp(gui.Settings{
				Size:           r.Size,
				Zoom:           r.Zoom,
				Locale:         r.Locale,
				ShowWeekRing:   r.ShowWeekRing,
				ShowMonthRing:  r.ShowMonthRing,
				ShowRingNames:  r.ShowRingNames,
				RotationOffset: r.RotationOffset,
				Logger:         c.Logger(),
			})
			if len(args) > 0 {
				app.RunWithFile(args[0])
			} else {
				app.Run()
			}
			return nil
		},
	}
}
