// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db provides the high-level database interface for the
// storage app.
package db

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
	"golang.org/x/net/context"
)

// DB is a high-level interface to a database for the storage
// app. It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	lastUpload   *sql.Stmt
	insertUpload *sql.Stmt
	insertResult *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to enable foreign keys.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID VARCHAR(20) PRIMARY KEY,
	Day VARCHAR(8) NOT NULL,
	Seq BIGINT UNSIGNED NOT NULL,
	Adapter VARCHAR(32) NOT NULL,
	Created BIGINT NOT NULL{{if not .sqlite3}},
	Index (Day, Seq){{end}}
);
CREATE TABLE IF NOT EXISTS Results (
	UploadID VARCHAR(20) NOT NULL,
	Seq BIGINT UNSIGNED NOT NULL,
	Name VARCHAR(1024) NOT NULL,
	Value TEXT NOT NULL,
	LowerValue TEXT,
	UpperValue TEXT,
	PRIMARY KEY (UploadID, Seq),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS UploadsDaySeq ON Uploads(Day, Seq);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.lastUpload, err = db.sql.Prepare("SELECT Seq FROM Uploads WHERE Day = ? ORDER BY Seq DESC LIMIT 1")
	if err != nil {
		return err
	}
	db.insertUpload, err = db.sql.Prepare("INSERT INTO Uploads(UploadID, Day, Seq, Adapter, Created) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertResult, err = db.sql.Prepare("INSERT INTO Results(UploadID, Seq, Name, Value, LowerValue, UpperValue) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// An Upload is a collection of results that share an upload ID.
type Upload struct {
	// ID is the value of the "uploadid" key that identifies the
	// upload, of the form YYYYMMDD.N.
	ID string
	// Adapter names the format the results were parsed from.
	Adapter string

	// seq is the index of the next result to insert.
	seq int64
	// db is the underlying database that this upload is going to.
	db *DB
	// tx is the transaction used by the upload.
	tx *sql.Tx
}

// NewUpload returns an upload for storing new results parsed by the
// named adapter. All results written to the Upload will have the same
// upload ID. The upload is not visible until Commit is called.
func (db *DB) NewUpload(ctx context.Context, adapter string) (*Upload, error) {
	t := now().UTC()
	day := t.Format("20060102")

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	var seq int64
	err = tx.Stmt(db.lastUpload).QueryRow(day).Scan(&seq)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	seq++

	id := fmt.Sprintf("%s.%d", day, seq)
	if _, err := tx.Stmt(db.insertUpload).Exec(id, day, seq, adapter, t.Unix()); err != nil {
		return nil, err
	}

	u := &Upload{
		ID:      id,
		Adapter: adapter,
		db:      db,
		tx:      tx,
	}
	tx = nil
	return u, nil
}

// InsertResults inserts every entry of rs into the upload, in order.
func (u *Upload) InsertResults(rs *benchresult.Results) error {
	stmt := u.tx.Stmt(u.db.insertResult)
	for _, e := range rs.Entries() {
		m := e.Metric
		if _, err := stmt.Exec(u.ID, u.seq, string(e.Name), m.Value.String(), decimalText(m.Lower), decimalText(m.Upper)); err != nil {
			return err
		}
		u.seq++
	}
	return nil
}

// Commit attempts to commit the upload.
func (u *Upload) Commit() error {
	return u.tx.Commit()
}

// Abort attempts to abort the upload.
func (u *Upload) Abort() error {
	return u.tx.Rollback()
}

// ErrNotFound is returned by Results if the upload does not exist.
var ErrNotFound = errors.New("upload not found")

// Results returns the results stored under uploadID, in the order
// they were inserted.
func (db *DB) Results(ctx context.Context, uploadID string) (*benchresult.Results, error) {
	var n int
	if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Uploads WHERE UploadID = ?", uploadID).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Name, Value, LowerValue, UpperValue FROM Results WHERE UploadID = ? ORDER BY Seq", uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rs := benchresult.New()
	for rows.Next() {
		var (
			name string
			m    benchresult.Metric
		)
		if err := rows.Scan(&name, &m.Value, &m.Lower, &m.Upper); err != nil {
			return nil, err
		}
		if err := rs.Insert(benchresult.Name(name), m); err != nil {
			return nil, fmt.Errorf("upload %s: %v", uploadID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// UploadInfo summarizes a stored upload.
type UploadInfo struct {
	ID      string
	Adapter string
	Created time.Time
	Count   int // number of results
}

// ListUploads returns the most recent uploads, newest first. It
// returns at most limit uploads.
func (db *DB) ListUploads(ctx context.Context, limit int) ([]UploadInfo, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT u.UploadID, u.Adapter, u.Created, COUNT(r.Seq)
FROM Uploads u LEFT JOIN Results r ON u.UploadID = r.UploadID
GROUP BY u.UploadID, u.Adapter, u.Created, u.Day, u.Seq
ORDER BY u.Day DESC, u.Seq DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []UploadInfo
	for rows.Next() {
		var (
			info    UploadInfo
			created int64
		)
		if err := rows.Scan(&info.ID, &info.Adapter, &created, &info.Count); err != nil {
			return nil, err
		}
		info.Created = time.Unix(created, 0).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.lastUpload, db.insertUpload, db.insertResult} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}

// decimalText returns the representation of a bound in the database.
// Decimals are stored as text so that no digits are lost.
func decimalText(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}
