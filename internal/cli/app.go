package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/delorenj/imi/internal/config"
	"github.com/delorenj/imi/internal/coordinator"
	"github.com/delorenj/imi/internal/registry"
)

// app bundles the configuration, registry, and coordinator every command
// operates against. It is built once in the root command's
// PersistentPreRunE and accessed by subcommands via App(), mirroring the
// teacher's single globalLogger accessor rather than threading the same
// three values through every RunE signature.
type app struct {
	cfg   *config.Config
	reg   *registry.Registry
	coord *coordinator.Coordinator
}

var (
	globalApp   *app       //nolint:gochecknoglobals // CLI state requires global access
	globalAppMu sync.Mutex //nolint:gochecknoglobals // protects globalApp
)

// App returns the application state initialized by the root command.
//
// IMPORTANT: this must only be called from within a command's RunE, after
// PersistentPreRunE has executed.
func App() *app { //nolint:revive // unexported return is intentional; callers use the package-level accessor
	globalAppMu.Lock()
	defer globalAppMu.Unlock()
	return globalApp
}

// initApp loads configuration, opens the registry, and constructs the
// coordinator, storing the result for App() to return.
func initApp(ctx context.Context, configPathOverride string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, configPathOverride, cwd)
	if err != nil {
		return err
	}

	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to determine database path: %w", err)
		}
	}

	reg, err := registry.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open registry at %s: %w", dbPath, err)
	}

	globalAppMu.Lock()
	globalApp = &app{cfg: cfg, reg: reg, coord: coordinator.New(reg, cfg)}
	globalAppMu.Unlock()

	return nil
}

// loadConfig loads configuration, honoring an explicit --config override by
// treating it as the project-level layer merged over the global config.
func loadConfig(ctx context.Context, configPathOverride, cwd string) (*config.Config, error) {
	if configPathOverride == "" {
		return config.Load(ctx, cwd)
	}

	globalPath, err := config.GlobalConfigPath()
	if err != nil {
		globalPath = ""
	}
	return config.LoadFromPaths(ctx, configPathOverride, globalPath)
}

// closeApp releases the registry connection opened by initApp, if any.
func closeApp() {
	globalAppMu.Lock()
	a := globalApp
	globalApp = nil
	globalAppMu.Unlock()

	if a != nil && a.reg != nil {
		_ = a.reg.Close()
	}
}
