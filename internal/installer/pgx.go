// internal/installer/pgx.go
package installer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vinculocrm/vinculo/internal/migrate"
	"github.com/vinculocrm/vinculo/internal/model"
)

// pgxApplySchema connects directly to the resolved database and applies
// the bootstrap schema.
func pgxApplySchema(ctx context.Context, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, migrate.Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// pgxCreateAdmin writes the organization and its admin profile in one
// transaction. Returns a non-empty message when the admin already
// existed and nothing was written.
func pgxCreateAdmin(ctx context.Context, connString string, input Input, passwordHash string) (string, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return "", fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM profiles WHERE email = $1", input.AdminEmail).Scan(&existing); err != nil {
		return "", fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing > 0 {
		return fmt.Sprintf("admin account %s already exists, skipped", input.AdminEmail), nil
	}

	var orgID string
	if err := tx.QueryRow(ctx, "INSERT INTO organizations (name) VALUES ($1) RETURNING id", input.CompanyName).Scan(&orgID); err != nil {
		return "", fmt.Errorf("failed to create organization: %w", err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO profiles (organization_id, email, full_name, role, password_hash) VALUES ($1, $2, $3, $4, $5)",
		orgID, input.AdminEmail, input.AdminName, string(model.RoleAdmin), passwordHash,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create admin profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return "", nil
}
