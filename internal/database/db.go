package database

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const defaultDBTimeout = config.DefaultDBTimeout

// sqliteParams are merged into every sqlite DSN unless the DSN already sets
// the key or one of the driver's aliases for it. Foreign keys drive comment
// and sub-task cascades; immediate transactions keep concurrent writers from
// deadlocking on lock upgrades.
var sqliteParams = []struct {
	keys  []string
	value string
}{
	{[]string{"_foreign_keys", "_fk"}, "on"},
	{[]string{"_journal_mode", "_journal"}, "WAL"},
	{[]string{"_busy_timeout", "_timeout"}, "5000"},
	{[]string{"_txlock"}, "immediate"},
}

// sqliteDSN appends the missing sqliteParams to dsn.
func sqliteDSN(dsn string) string {
	path, rawQuery, _ := strings.Cut(dsn, "?")
	existing, err := url.ParseQuery(rawQuery)
	if err != nil {
		existing = url.Values{}
	}
	params := []string{}
	if rawQuery != "" {
		params = append(params, rawQuery)
	}
	for _, p := range sqliteParams {
		if !slices.ContainsFunc(p.keys, existing.Has) {
			params = append(params, p.keys[0]+"="+p.value)
		}
	}
	return path + "?" + strings.Join(params, "&")
}

// Database wraps the connection pool shared by every repository.
type Database struct {
	DB      *sqlx.DB
	driver  string
	timeout time.Duration
	now     func() time.Time
}

// Options controls how Open connects.
type Options struct {
	Driver  string
	DSN     string
	Timeout time.Duration
	// Now overrides the clock used for created/updated timestamps.
	Now func() time.Time
}

// Open connects to the configured store and applies the schema.
func Open(ctx context.Context, opts Options) (*Database, error) {
	driver := opts.Driver
	if driver == "" {
		driver = config.DriverSQLite
	}
	dsn := opts.DSN
	switch driver {
	case config.DriverSQLite:
		dsn = sqliteDSN(dsn)
	case config.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultDBTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	d := &Database{DB: conn, driver: driver, timeout: timeout, now: now}

	pingCtx, cancel := d.withTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err := d.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Driver reports the database/sql driver name in use.
func (d *Database) Driver() string { return d.driver }

func (d *Database) isPostgres() bool { return d.driver == config.DriverPostgres }

// stamp returns the current time truncated for storage.
func (d *Database) stamp() time.Time {
	return d.now().UTC().Truncate(time.Microsecond)
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = d.timeout
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	ctx, cancel := d.withTimeout(ctx, d.timeout)
	defer cancel()

	tx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		return rollbackWithLog(tx, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// rollbackWithLog rolls back tx and returns the original error.
func rollbackWithLog(tx *sqlx.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		zap.L().Warn("rollback failed", zap.Error(rbErr), zap.NamedError("cause", err))
	}
	return err
}

// getx, selectx and execx rebind '?' placeholders for the active driver.
func getx(ctx context.Context, q sqlx.ExtContext, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...)
}

func selectx(ctx context.Context, q sqlx.ExtContext, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...)
}

func execx(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// inx expands slice arguments for IN clauses; the result still uses '?'.
func inx(query string, args ...any) (string, []any, error) {
	return sqlx.In(query, args...)
}
