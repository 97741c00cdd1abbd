// CLI-only version (no GUI dependencies)
package main

import (
	"os"

	"yearwheel/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
