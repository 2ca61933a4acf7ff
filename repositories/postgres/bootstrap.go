package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/priceoptimizer/backend/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapAdmin seeds the admin account if it does not exist yet.
// Idempotent: safe to run on every startup.
func (db *DB) BootstrapAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		db.logger.Warn("admin bootstrap skipped, credentials not configured")
		return nil
	}

	var id int64
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err == nil {
		db.logger.Debug("admin account already present", zap.Int64("id", id))
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, is_verified, created_at)
		VALUES ($1, $2, $3, $4, true, CURRENT_TIMESTAMP)
	`, name, email, string(hash), models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	db.logger.Info("admin account created", zap.String("email", email))
	return nil
}
