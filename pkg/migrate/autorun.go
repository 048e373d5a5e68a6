package migrate

import (
	"context"
	"fmt"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/config"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/db"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
)

// MaybeAutoRun executes migrations automatically when the auto-migrate flag is
// enabled and the app is not running in production.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg.App.IsProd() || !cfg.DB.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
