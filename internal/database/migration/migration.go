package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"relatosapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Steps are idempotent so a partially migrated or legacy schema converges to the same shape.
// Legacy deployments kept a single attachment inline on relatos (anexo_dados, anexo_filename,
// anexo_mimetype), had no instituicao/data_ocorrido columns and allowed NULL nome/relato_texto.
var steps = []migrationStep{
	{
		Name: "create_table_relatos",
		SQL: `CREATE TABLE IF NOT EXISTS relatos (
  id            BIGSERIAL PRIMARY KEY,
  nome          TEXT      NOT NULL,
  contato       TEXT      NULL,
  instituicao   TEXT      NOT NULL,
  data_ocorrido DATE      NOT NULL,
  relato_texto  TEXT      NOT NULL
);`,
	},
	{
		Name: "add_column_relatos_instituicao",
		SQL: `ALTER TABLE relatos ADD COLUMN IF NOT EXISTS instituicao TEXT NOT NULL DEFAULT '';
ALTER TABLE relatos ALTER COLUMN instituicao DROP DEFAULT;`,
	},
	{
		Name: "add_column_relatos_data_ocorrido",
		SQL: `ALTER TABLE relatos ADD COLUMN IF NOT EXISTS data_ocorrido DATE NOT NULL DEFAULT CURRENT_DATE;
ALTER TABLE relatos ALTER COLUMN data_ocorrido DROP DEFAULT;`,
	},
	{
		Name: "enforce_relatos_not_null",
		SQL: `UPDATE relatos SET nome = '' WHERE nome IS NULL;
UPDATE relatos SET relato_texto = '' WHERE relato_texto IS NULL;
ALTER TABLE relatos ALTER COLUMN nome SET NOT NULL;
ALTER TABLE relatos ALTER COLUMN relato_texto SET NOT NULL;`,
	},
	{
		Name: "create_table_anexos",
		SQL: `CREATE TABLE IF NOT EXISTS anexos (
  id          BIGSERIAL PRIMARY KEY,
  filename    TEXT      NOT NULL,
  mimetype    TEXT      NOT NULL,
  dados       BYTEA     NULL,
  storage_key TEXT      NULL,
  relato_id   BIGINT    NOT NULL REFERENCES relatos (id)
);`,
	},
	{
		Name: "create_index_anexos_relato_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_anexos_relato_id ON anexos (relato_id);`,
	},
	{
		Name: "move_inline_attachments",
		SQL: `DO $$
BEGIN
  IF EXISTS (
    SELECT 1 FROM information_schema.columns
    WHERE table_schema = 'public' AND table_name = 'relatos' AND column_name = 'anexo_dados'
  ) THEN
    INSERT INTO anexos (filename, mimetype, dados, relato_id)
    SELECT COALESCE(anexo_filename, 'anexo'),
           COALESCE(anexo_mimetype, 'application/octet-stream'),
           anexo_dados,
           id
    FROM relatos
    WHERE anexo_dados IS NOT NULL;

    ALTER TABLE relatos
      DROP COLUMN anexo_dados,
      DROP COLUMN IF EXISTS anexo_filename,
      DROP COLUMN IF EXISTS anexo_mimetype;
  END IF;
END
$$;`,
	},
}

const sentinelQuery = `SELECT to_regclass('public.anexos') IS NOT NULL
  AND NOT EXISTS (
    SELECT 1 FROM information_schema.columns
    WHERE table_schema = 'public' AND table_name = 'relatos' AND column_name = 'anexo_dados'
  )
  AND NOT EXISTS (
    SELECT 1 FROM information_schema.columns
    WHERE table_schema = 'public' AND table_name = 'relatos'
      AND column_name IN ('nome', 'relato_texto') AND is_nullable = 'YES'
  )`

// EnsureMigrated checks whether the current schema is in place and runs the migration steps,
// in a single transaction, if it isn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logging.Component("database").With().Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var current bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&current); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if current {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
