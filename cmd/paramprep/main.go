package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/paramprep"
	"github.com/erraggy/paramprep/cmd/paramprep/commands"
)

var commandNames = []string{"prepare", "describe", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("paramprep v%s\n", paramprep.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "prepare":
		err = commands.HandlePrepare(os.Args[2:])
	case "describe":
		err = commands.HandleDescribe(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrPreparationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within an edit
// distance of 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`paramprep - Request Parameter Preparation

Usage:
  paramprep <command> [options]

Commands:
  prepare     Prepare raw parameter values against a schema document
  describe    Document parameters as text, OpenAPI 3.0 or Swagger 2.0
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  paramprep prepare -schema params.yaml values.json
  echo '{"limit": "20"}' | paramprep prepare -schema params.yaml -location query -
  paramprep describe -oas 3 -location query params.yaml
  paramprep describe -config paramprep.toml params.yaml

Configuration:
  Settings are read from -config (TOML), then PARAMPREP_* environment
  variables, then flags.

Run 'paramprep <command> --help' for more information on a command.`)
}
