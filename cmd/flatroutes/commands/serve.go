package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/flatroutes/pkg/inspect"
	"github.com/fatih/color"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveOpen  bool
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse the route manifest in a web page",
	Long: `Start a local server showing the route tree, with the raw manifest at
/manifest.json, per-route details at /routes/{id} and URL resolution at
/match?path=/some/url.

Examples:
  flatroutes serve
  flatroutes serve --addr :8080 --open
  flatroutes serve --watch`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :4321)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the page in a browser")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Rebuild the manifest when files change")
}

func runServe(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	cfg, result, err := scanProject()
	if err != nil {
		fail("Failed to scan routes", err)
	}
	printCollisions(result.Collisions)

	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	url := serverURL(addr)

	srv := inspect.New(result.Manifest, inspect.WithLogger(slog.Default()), inspect.WithTitle(projectName()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		go func() {
			err := watchTree(ctx, cfg.AppDir, debounceDuration, func() {
				timestamp := time.Now().Format("15:04:05")
				next, err := newScanner(cfg).Scan()
				if err != nil {
					fmt.Printf("  [%s] %s %v\n", timestamp, red("✗"), err)
					return
				}
				printCollisions(next.Collisions)
				srv.SetManifest(next.Manifest)
				fmt.Printf("  [%s] %s Reloaded %d routes\n", timestamp, green("✓"), next.Manifest.Len())
			})
			if err != nil {
				slog.Error("watch failed", "error", err)
			}
		}()
	}

	if jsonOutput {
		printSuccess(ServeOutput{Status: "listening", URL: url, Routes: result.Manifest.Len()})
	} else {
		fmt.Printf("\n  %s Route Inspector\n\n", cyan("flatroutes"))
		fmt.Printf("  ➜ Local:    %s\n", cyan(url))
		fmt.Printf("  ➜ Manifest: %s\n", cyan(url+"/manifest.json"))
		fmt.Printf("  %s %d routes", green("✓"), result.Manifest.Len())
		if serveWatch {
			fmt.Printf(", watching %s", cfg.AppDir)
		}
		fmt.Printf("\n\n")
	}

	if serveOpen {
		go func() {
			time.Sleep(200 * time.Millisecond)
			if err := browser.OpenURL(url); err != nil {
				fmt.Printf("  %s Could not open browser. Please visit: %s\n", yellow("!"), url)
			}
		}()
	}

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fail("Server error", err)
	}
}

// serverURL turns a listen address into a browsable URL.
func serverURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
