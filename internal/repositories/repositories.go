package repositories

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/logger"
)

//go:embed schema.sql
var schema string

// TxGetter returns the request-scoped transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// Migrate creates the users, tokens and friends_association tables if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	logger.Log.Infow("schema migrated")
	return nil
}

type base struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// executor returns the request transaction if present, otherwise the pool.
func (b base) executor(ctx context.Context) sqlx.ExtContext {
	if b.txGetter != nil {
		if tx := b.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return b.db
}

// withTx runs fn inside the request transaction when one is bound to ctx.
// Otherwise fn runs in its own transaction, committed when fn succeeds and
// rolled back before the error is returned.
func (b base) withTx(ctx context.Context, fn func(ex sqlx.ExtContext) error) (err error) {
	if b.txGetter != nil {
		if tx := b.txGetter(ctx); tx != nil {
			return fn(tx)
		}
	}

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return apperrors.Internal("failed to begin transaction", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return apperrors.Internal("failed to commit transaction", err)
	}
	committed = true
	return nil
}

// logQuery logs a statement on a single line together with its outcome.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

// constraintFields maps unique constraints to the request field they guard.
var constraintFields = map[string]string{
	"users_email_key":        "email",
	"users_display_name_key": "display_name",
	"users_spotify_id_key":   "spotify_id",
	"tokens_token_key":       "token",
}

// mapError converts driver errors into the application taxonomy.
// Unique violations become conflicts, everything else an internal failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		field := constraintFields[pgErr.ConstraintName]
		if field == "" {
			field = pgErr.ConstraintName
		}
		return apperrors.Conflict(field, fmt.Sprintf("%s already in use", strings.ReplaceAll(field, "_", " ")))
	}
	return apperrors.Internal("database operation failed", err)
}

func rowsAffected(res interface{ RowsAffected() (int64, error) }) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
