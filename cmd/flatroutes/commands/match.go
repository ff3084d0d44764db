package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/match"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <url-path>",
	Short: "Show which route handles a URL path",
	Long: `Resolve a URL path against the scanned routes and print the matched
route, its parameters and the chain of parent routes that render it.

Examples:
  flatroutes match /blog/hello-world
  flatroutes match /docs/en/getting-started --json`,
	Args: cobra.ExactArgs(1),
	Run:  runMatch,
}

func runMatch(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed).SprintFunc()

	_, result, err := scanProject()
	if err != nil {
		fail("Failed to scan routes", err)
	}

	res, ok := match.New(result.Manifest).Match(args[0])
	if !ok {
		if jsonOutput {
			printJSONError(fmt.Errorf("no route matches %s", args[0]))
		} else {
			fmt.Printf("  %s no route matches %s\n", red("Error:"), args[0])
		}
		os.Exit(1)
	}

	if jsonOutput {
		printSuccess(res)
		return
	}

	fmt.Print(renderMatch(res))
}

func renderMatch(res *match.Result) string {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n\n", cyan("Matched"), green(res.Route.ID))
	fmt.Fprintf(&b, "  Pattern: %s\n", res.Pattern)
	fmt.Fprintf(&b, "  File:    %s\n", res.Route.File)

	if len(res.Params) > 0 {
		keys := make([]string, 0, len(res.Params))
		for k := range res.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\n  Params:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "    %s = %s\n", k, res.Params[k])
		}
	}

	b.WriteString("\n  Chain:\n")
	for i, r := range res.Chain {
		fmt.Fprintf(&b, "    %s%s %s\n", strings.Repeat("  ", i), r.ID, dim(r.File))
	}
	b.WriteString("\n")
	return b.String()
}
