package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"journal-management-api/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// queryStep scripts one statement. A nil args slice skips argument matching,
// for statements carrying time.Now values.
type queryStep struct {
	pattern      *regexp.Regexp
	args         []driver.Value
	columns      []string
	rows         [][]driver.Value
	rowsAffected int64
	err          error
}

type scriptedDB struct {
	mu    sync.Mutex
	steps []*queryStep
}

func (db *scriptedDB) next(query string, args []driver.NamedValue) (*queryStep, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.steps) == 0 {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	step := db.steps[0]
	if !step.pattern.MatchString(query) {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	if step.args != nil {
		if len(step.args) != len(args) {
			return nil, fmt.Errorf("unexpected arg count for %s: got %d want %d", query, len(args), len(step.args))
		}
		for i := range args {
			if args[i].Value != step.args[i] {
				return nil, fmt.Errorf("unexpected arg %d for %s: got %v want %v", i, query, args[i].Value, step.args[i])
			}
		}
	}
	db.steps = db.steps[1:]
	return step, nil
}

func (db *scriptedDB) verifyComplete() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.steps) != 0 {
		return fmt.Errorf("unmet expectations: %d", len(db.steps))
	}
	return nil
}

type scriptedDriver struct {
	db *scriptedDB
}

func (d *scriptedDriver) Open(string) (driver.Conn, error) {
	return &scriptedConn{db: d.db}, nil
}

type scriptedConn struct {
	db *scriptedDB
}

func (c *scriptedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *scriptedConn) Close() error { return nil }

func (c *scriptedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *scriptedConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	step, err := c.db.next(query, args)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	return &scriptedRows{columns: step.columns, rows: step.rows}, nil
}

func (c *scriptedConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	step, err := c.db.next(query, args)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	return driver.RowsAffected(step.rowsAffected), nil
}

type scriptedRows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *scriptedRows) Columns() []string { return r.columns }

func (r *scriptedRows) Close() error { return nil }

func (r *scriptedRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.idx]
	for i := range dest {
		dest[i] = nil
	}
	for i := range row {
		dest[i] = row[i]
	}
	r.idx++
	return nil
}

func newScriptedGormDB(t *testing.T, steps []*queryStep) (*gorm.DB, *scriptedDB, func()) {
	t.Helper()
	state := &scriptedDB{steps: steps}
	driverName := fmt.Sprintf("scripted_%d", time.Now().UnixNano())
	sql.Register(driverName, &scriptedDriver{db: state})

	sqlDB, err := sql.Open(driverName, "")
	if err != nil {
		t.Fatalf("failed to open sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to create gorm db: %v", err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
	}
	return gormDB, state, cleanup
}

func TestListRoleGrantsMapsRows(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `role_grants` WHERE user_id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{int64(5)},
			columns: []string{"grant_id", "user_id", "role_path", "scope_type", "journal_id"},
			rows: [][]driver.Value{
				{int64(1), int64(5), "admin", "site", nil},
				{int64(2), int64(5), "editor", "journal", int64(3)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewGormRoleGrantStore(db)
	grants, err := store.ListRoleGrants(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}

	if len(grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(grants))
	}
	if !grants[0].IsSite() || grants[0].RolePath != models.RoleAdmin {
		t.Fatalf("first grant mapped wrong: %+v", grants[0])
	}
	if !grants[1].AppliesToJournal(3) || grants[1].RolePath != models.RoleEditor {
		t.Fatalf("second grant mapped wrong: %+v", grants[1])
	}
}

func TestResolveActorUnknownUserIsUnauthorized(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE user_id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{int64(42)},
			columns: []string{"user_id", "email", "is_disabled"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewGormRoleGrantStore(db)
	err := store.ResolveActor(context.Background(), 42)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown user: got %v want ErrUnauthorized", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestResolveActorDisabledUserIsUnauthorized(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE user_id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{int64(7)},
			columns: []string{"user_id", "email", "is_disabled"},
			rows: [][]driver.Value{
				{int64(7), "editor@example.org", true},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewGormRoleGrantStore(db)
	err := store.ResolveActor(context.Background(), 7)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("disabled user: got %v want ErrUnauthorized", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
