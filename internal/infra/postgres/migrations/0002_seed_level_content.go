package migrations

import (
	"context"
	"encoding/json"

	"healing-companion-service/internal/assessment"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			// Seed the built-in content rows; deployments may overwrite them later.
			for level, content := range assessment.DefaultContent() {
				data, err := json.Marshal(content)
				if err != nil {
					return err
				}
				if _, err := db.ExecContext(ctx,
					`INSERT INTO level_content (level, data) VALUES (?, ?::jsonb) ON CONFLICT (level) DO NOTHING`,
					string(level), string(data)); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DELETE FROM level_content`)
			return err
		},
	)
}
