package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/flatroutes/pkg/config"
	"github.com/abdul-hamid-achik/flatroutes/pkg/generator"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	initYes   bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a flatroutes.yaml config file",
	Long: `Create flatroutes.yaml in the current directory. In a terminal you are
asked for the app directory, naming convention and output; with --yes (or
when not attached to a terminal) the defaults are written.

Examples:
  flatroutes init
  flatroutes init --yes --app-dir web/app`,
	Run: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	path := configFile
	if path == "" {
		path = config.FileName
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		fail("Config already exists", fmt.Errorf("%s exists (use --force to overwrite)", path))
	}

	cfg := initialConfig()

	interactive := !initYes && !jsonOutput && isatty.IsTerminal(os.Stdin.Fd())
	if interactive {
		if err := promptConfig(&cfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Printf("  %s Cancelled\n", yellow("!"))
				return
			}
			fail("Prompt failed", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		fail("Invalid config", err)
	}
	if err := config.Write(path, cfg); err != nil {
		fail("Failed to write config", err)
	}

	if jsonOutput {
		printSuccess(InitOutput{
			File:       path,
			AppDir:     cfg.AppDir,
			Convention: cfg.Convention,
			Output:     cfg.Output,
			Format:     cfg.Format,
		})
		return
	}

	fmt.Printf("  %s Created %s\n", green("✓"), path)
	if _, err := scanner.EnsureRootRouteExists(cfg.AppDir, nil); err != nil {
		fmt.Printf("  %s No root route in %s yet; add %s before running generate\n",
			yellow("!"), cfg.AppDir, filepath.Join(cfg.AppDir, "root.tsx"))
	}
}

// initialConfig returns the defaults with global flag overrides applied.
func initialConfig() config.Config {
	cfg := config.Default()
	if flagAppDir != "" {
		cfg.AppDir = flagAppDir
	}
	if flagConvention != "" {
		cfg.Convention = flagConvention
	}
	return cfg
}

func promptConfig(cfg *config.Config) error {
	formatOptions := make([]huh.Option[string], 0, len(generator.Formats()))
	for _, f := range generator.Formats() {
		formatOptions = append(formatOptions, huh.NewOption(string(f), string(f)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("App directory").
				Description("Directory holding root.tsx and your routes").
				Value(&cfg.AppDir),
			huh.NewSelect[string]().
				Title("Naming convention").
				Options(
					huh.NewOption("Flat routes (routes/blog.$slug.tsx)", string(scanner.ConventionFlat)),
					huh.NewOption("Route extensions (**/*.route.tsx)", string(scanner.ConventionExtensions)),
				).
				Value(&cfg.Convention),
			huh.NewSelect[string]().
				Title("Manifest format").
				Options(formatOptions...).
				Value(&cfg.Format),
			huh.NewInput().
				Title("Manifest output").
				Value(&cfg.Output),
		),
	)
	return form.Run()
}
