package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/packfinderz-pos/pkg/config"
	"github.com/angelmondragon/packfinderz-pos/pkg/db"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
)

// MaybeRunDev applies migrations on boot when running in dev with the flag on,
// or whenever the till runs on sqlite (there is no separate migrate step there).
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	autoRun := cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
	if !autoRun && !cfg.FeatureFlags.UseSQLite {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": client.Dialect()})
	logg.Info(ctx, "running goose migrations on boot")

	if err := Up(ctx, sqlDB, client.Dialect()); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
