package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"payloadkit/internal/logging"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// код duplicate_object
const pgDuplicateObject = "42710"

// ApplyDDL выполняет шаги по порядку. Ожидается идемпотентный DDL (... if not exists).
func ApplyDDL(ctx context.Context, db *sql.DB, stmts []Statement, log *zap.Logger) error {
	log = logging.OrNop(log)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, st := range stmts {
		sqlText := strings.TrimSpace(st.SQL)
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateObject {
				log.Info("DDL skipped (already exists)",
					zap.String("key", st.Key),
					zap.String("message", strings.TrimSpace(pgErr.Message)))
				continue
			}
			return fmt.Errorf("DDL apply failed (%s): %w", st.Key, err)
		}
		log.Debug("DDL applied", zap.String("key", st.Key))
	}
	return nil
}
