package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/paramprep/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The server takes its
// settings from PARAMPREP_* environment variables, so there are no flags.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: paramprep mcp\n\n")
		Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio exposing the\n")
		Writef(fs.Output(), "prepare and describe tools. Configure it with PARAMPREP_* environment variables.\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
