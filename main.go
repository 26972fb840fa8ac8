package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/rulesync-dev/rulesync/internal/cli"
)

// CLI is the top-level command-line interface structure.
var CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose diagnostic output."`
	Version kong.VersionFlag `help:"Show version information."`

	Init   cli.InitCmd   `cmd:"" help:"Create a rulesync configuration in the current directory."`
	Apply  cli.ApplyCmd  `cmd:"" help:"Write the merged rules into each selected agent's config file."`
	Revert cli.RevertCmd `cmd:"" help:"Restore agent config files from their backups."`
	List   cli.ListCmd   `cmd:"" help:"List supported agents and their output paths."`
}

// Version information (injected by GoReleaser via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rulesync"),
		kong.Description("Synchronizes shared rule files into the config files of AI coding agents"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("rulesync %s (%s, built %s)", version, commit, date),
		},
	)

	if err := ctx.Run(); err != nil {
		// Commands report their own errors through the logger;
		// signal failure to the shell here.
		os.Exit(1)
	}
	os.Exit(0)
}
