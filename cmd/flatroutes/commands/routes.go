package commands

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route tree",
	Long: `Scan the app directory and print every route as a tree of parent and
child routes, with its URL path and source file.

Examples:
  flatroutes routes
  flatroutes routes --app-dir web/app
  flatroutes routes --convention extensions
  flatroutes routes --json`,
	Run: runRoutes,
}

func runRoutes(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cfg, result, err := scanProject()
	if err != nil {
		fail("Failed to scan routes", err)
	}

	if jsonOutput {
		printSuccess(RoutesOutput{
			AppDir:      cfg.AppDir,
			Convention:  cfg.Convention,
			Routes:      result.Manifest,
			Collisions:  collisionOutputs(result.Collisions),
			TotalRoutes: result.Manifest.Len(),
		})
		return
	}

	printCollisions(result.Collisions)

	fmt.Printf("\n  %s Route Tree\n\n", cyan("flatroutes"))
	fmt.Print(renderTree(result.Manifest, "  "))
	fmt.Printf("\n  %s\n\n", dim(fmt.Sprintf("%d routes in %s (%s)", result.Manifest.Len(), cfg.AppDir, cfg.Convention)))
}

// renderTree prints the manifest as an indented tree rooted at "root".
// Routes whose parent was dropped by a collision hang off the root.
func renderTree(m *routes.Manifest, indent string) string {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	b.WriteString(indent + routes.RootID + "\n")

	type item struct {
		route  routes.Route
		prefix string
		last   bool
	}

	var top []routes.Route
	for _, r := range m.Routes() {
		if _, ok := m.Get(r.ParentID); r.ParentID == routes.RootID || !ok {
			top = append(top, r)
		}
	}

	stack := make([]item, 0, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		stack = append(stack, item{route: top[i], prefix: indent, last: i == len(top)-1})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch, childPrefix := "├── ", "│   "
		if it.last {
			branch, childPrefix = "└── ", "    "
		}

		line := it.prefix + branch + green(it.route.ID) + " " + m.FullPath(it.route.ID)
		if it.route.Index {
			line += " " + yellow("(index)")
		}
		line += " " + dim(it.route.File)
		b.WriteString(line + "\n")

		children := m.Children(it.route.ID)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{
				route:  children[i],
				prefix: it.prefix + childPrefix,
				last:   i == len(children)-1,
			})
		}
	}

	return b.String()
}
