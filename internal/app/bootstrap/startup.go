// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/vitrine/internal/app/store/layoutstore"
	"github.com/dalemusser/vitrine/internal/app/store/userstore"
	"github.com/dalemusser/vitrine/internal/app/system/authutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are
// served.
//
// Returning a non-nil error aborts startup and prevents the server
// from starting. The context is cancelled if the process is asked to
// shut down while Startup is running.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Materialize the product page layout singleton so the first
	// storefront request never races the default insert.
	if _, err := layoutstore.New(deps.MongoDatabase).GetOrCreate(ctx); err != nil {
		logger.Error("failed to initialize product page layout", zap.Error(err))
		return err
	}

	// Seed admin user if configured
	if appCfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, deps, appCfg, logger); err != nil {
			logger.Error("failed to seed admin user", zap.Error(err))
			return err
		}
	}

	return nil
}

// ensureAdminUser creates the configured admin account on first boot.
// An account that already exists is left alone; password rotation goes
// through the normal channels, not config.
func ensureAdminUser(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	exists, err := users.Exists(ctx, appCfg.SeedAdminEmail)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug("admin user already configured",
			zap.String("email", appCfg.SeedAdminEmail))
		return nil
	}

	if appCfg.SeedAdminPassword == "" {
		return fmt.Errorf("seed_admin_email is set but seed_admin_password is empty")
	}
	if err := authutil.ValidatePassword(appCfg.SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin password rejected: %w", err)
	}

	hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	user, err := users.Create(ctx, userstore.CreateInput{
		FullName:     appCfg.SeedAdminName,
		Email:        appCfg.SeedAdminEmail,
		PasswordHash: hash,
		Role:         "admin",
	})
	if err != nil {
		return err
	}

	logger.Info("created admin user",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID.Hex()))
	return nil
}
