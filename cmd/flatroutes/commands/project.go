package commands

import (
	"log/slog"

	"github.com/abdul-hamid-achik/flatroutes/pkg/config"
	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/spf13/viper"
)

// loadConfig reads flatroutes.yaml and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	v := config.New()
	if err := bindGlobalFlags(v); err != nil {
		return nil, err
	}
	return config.LoadWith(v, configFile)
}

// bindGlobalFlags lets explicitly set flags take precedence over the file.
func bindGlobalFlags(v *viper.Viper) error {
	flags := rootCmd.PersistentFlags()
	if err := v.BindPFlag("app_dir", flags.Lookup("app-dir")); err != nil {
		return err
	}
	return v.BindPFlag("convention", flags.Lookup("convention"))
}

// newScanner creates a scanner for cfg that logs through the default logger.
func newScanner(cfg *config.Config) *scanner.Scanner {
	s := scanner.NewScanner(cfg.AppDir, cfg.ScannerOptions())
	s.SetVerbose(verbose)
	s.SetLogger(slog.Default())
	return s
}

// scanProject loads the config and scans the app directory.
func scanProject() (*config.Config, *scanner.ScanResult, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	result, err := newScanner(cfg).Scan()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, result, nil
}
