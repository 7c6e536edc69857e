package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/hubertnosek100/hmediator/internal/adapters/metrics"
	"github.com/hubertnosek100/hmediator/internal/infrastructure/config"
)

// loadConfig loads configuration honouring the global --config, --verbose and --metrics flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if showMetrics {
		cfg.Metrics.Enabled = true
	}

	return cfg, nil
}

// withApp runs fn against a freshly wired App and releases it afterwards
func withApp(fn func(app *App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	runErr := fn(app)

	if showMetrics {
		fmt.Fprintln(os.Stderr, "\nDispatch metrics:")
		if err := metrics.WriteText(os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return runErr
}

// maskPassword hides the password component of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
