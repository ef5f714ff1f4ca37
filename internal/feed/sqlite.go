package feed

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/suite"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite reads bars from and writes results to a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("feed: open %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// DB exposes the underlying handle.
func (s *SQLite) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadTable reads every row of table in rowid order.
func (s *SQLite) LoadTable(ctx context.Context, table string) (*Frame, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("feed: invalid table name %q", table)
	}
	return s.LoadQuery(ctx, `SELECT * FROM `+table+` ORDER BY rowid`)
}

// LoadQuery runs query and maps its result columns by name the same way
// ReadCSV maps headers. NULL prices are an error; NULL volume reads as 0.
func (s *SQLite) LoadQuery(ctx context.Context, query string, args ...any) (*Frame, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("feed: query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	b, err := newFrameBuilder(names)
	if err != nil {
		return nil, err
	}
	withTime := b.hasTime()

	nums := make([]sql.NullFloat64, len(names))
	var stamp sql.NullString
	var discard any
	dest := make([]any, len(names))
	for i, slot := range b.slots {
		switch slot {
		case "":
			dest[i] = &discard
		case "time":
			dest[i] = &stamp
		default:
			dest[i] = &nums[i]
		}
	}

	for row := 1; rows.Next(); row++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("feed: row %d: %w", row, err)
		}
		for i, slot := range b.slots {
			if slot == "" || slot == "time" {
				continue
			}
			if !nums[i].Valid && slot != "volume" {
				return nil, fmt.Errorf("feed: row %d: NULL %s", row, slot)
			}
			col := b.column(slot)
			*col = append(*col, core.TAFloat(nums[i].Float64))
		}
		if withTime {
			b.frame.Times = append(b.frame.Times, stamp.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b.frame, nil
}

// SaveResult writes res into table, replacing any rows already there. The
// table gets a bar index, an optional time column and one REAL column per
// result column; undefined values are stored as NULL.
func (s *SQLite) SaveResult(ctx context.Context, table string, times []string, res *suite.Result) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("feed: invalid table name %q", table)
	}
	if times != nil && len(times) != res.Len() {
		return fmt.Errorf("feed: %d time labels for %d bars", len(times), res.Len())
	}

	cols := []string{"bar INTEGER PRIMARY KEY", "time TEXT"}
	marks := []string{"?", "?"}
	for _, c := range res.Columns {
		cols = append(cols, quoteIdent(c.Name)+" REAL")
		marks = append(marks, "?")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
		return fmt.Errorf("feed: drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+table+` (`+strings.Join(cols, ", ")+`)`); err != nil {
		return fmt.Errorf("feed: create %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` VALUES (`+strings.Join(marks, ", ")+`)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(marks))
	for i := 0; i < res.Len(); i++ {
		args[0] = i
		args[1] = nil
		if times != nil {
			args[1] = times[i]
		}
		for k, c := range res.Columns {
			if v := c.Values[i]; !core.IsNaN(v) {
				args[k+2] = float64(v)
			} else {
				args[k+2] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("feed: insert bar %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
