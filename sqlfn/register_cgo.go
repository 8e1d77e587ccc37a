//go:build cgo

package sqlfn

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/andreasbell/sqlite-protobuf/wire"
)

// Register installs extract, to_json, foreach, and each against conn.
// Call it from a github.com/mattn/go-sqlite3 ConnectHook (see the
// cmd/sqliteprotobuf demo for the registration wiring), the same place
// _examples/buildbuddy-io-buildbuddy/server/util/db/db_cgo.go isolates
// its own cgo-dependent driver setup behind a build tag.
func Register(conn *sqlite3.SQLiteConn) error {
	if err := conn.RegisterFunc("extract", sqlExtract, true); err != nil {
		return fmt.Errorf("register extract: %w", err)
	}
	if err := conn.RegisterFunc("to_json", sqlToJSON, true); err != nil {
		return fmt.Errorf("register to_json: %w", err)
	}
	module := &foreachModule{}
	if err := conn.CreateModule("foreach", module); err != nil {
		return fmt.Errorf("register foreach: %w", err)
	}
	if err := conn.CreateModule("each", module); err != nil {
		return fmt.Errorf("register each: %w", err)
	}
	return nil
}

func sqlExtract(blob []byte, path string, typ string) (interface{}, error) {
	return Extract(blob, path, typ)
}

func sqlToJSON(blob []byte, mode ...int64) (string, error) {
	var m int64
	if len(mode) > 0 {
		m = mode[0]
	}
	return ToJSON(blob, m), nil
}

// foreachModule implements sqlite3.Module for both the "foreach" and
// "each" virtual table names, mirroring the original extension
// registering the same sqlite3_module struct under both names.
type foreachModule struct{}

func (m *foreachModule) Create(conn *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return m.Connect(conn, args)
}

func (m *foreachModule) DestroyModule() {}

func (m *foreachModule) Connect(conn *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	err := conn.DeclareVTab(`CREATE TABLE foreach (
		tag      INTEGER,
		field    INTEGER,
		wiretype INTEGER,
		value    BLOB,
		parent   INTEGER,
		buffer   BLOB HIDDEN,
		root     TEXT HIDDEN
	)`)
	if err != nil {
		return nil, err
	}
	return &foreachTable{}, nil
}

type foreachTable struct{}

func (t *foreachTable) Open() (sqlite3.VTabCursor, error) {
	return &foreachCursor{}, nil
}

func (t *foreachTable) Disconnect() error { return nil }
func (t *foreachTable) Destroy() error    { return nil }

const (
	colTag      = 0
	colField    = 1
	colWireType = 2
	colValue    = 3
	colParent   = 4
	colBuffer   = 5
	colRoot     = 6

	// colRowid is the column index SQLite reports for the rowid.
	colRowid = -1
)

// BestIndex picks the plan: a buffer-only equality constraint (idxNum 1)
// or a buffer-plus-root pair (idxNum 3). Without a usable buffer equality
// constraint it returns an error. ORDER BY rowid ascending is reported as
// already satisfied, since rows are produced in wire order and rowid is
// assigned in that same order.
func (t *foreachTable) BestIndex(cst []sqlite3.InfoConstraint, ob []sqlite3.InfoOrderBy) (*sqlite3.IndexResult, error) {
	used := make([]bool, len(cst))
	idxNum := 0

	bufferIdx, rootIdx := -1, -1
	for i, c := range cst {
		if !c.Usable || c.Op != sqlite3.OpEQ {
			continue
		}
		switch c.Column {
		case colBuffer:
			bufferIdx = i
		case colRoot:
			rootIdx = i
		}
	}

	if bufferIdx >= 0 {
		used[bufferIdx] = true
		idxNum = 1
		if rootIdx >= 0 {
			used[rootIdx] = true
			idxNum = 3
		}
	} else {
		return nil, errors.New("foreach: buffer argument is required")
	}

	alreadyOrdered := len(ob) == 1 && ob[0].Column == colRowid && !ob[0].Desc

	return &sqlite3.IndexResult{
		Used:           used,
		IdxNum:         idxNum,
		IdxStr:         "",
		AlreadyOrdered: alreadyOrdered,
		EstimatedCost:  1.0,
		EstimatedRows:  16,
	}, nil
}

type foreachCursor struct {
	rows []ForeachRow
	pos  int
}

func (c *foreachCursor) Filter(idxNum int, idxStr string, vals []interface{}) error {
	if len(vals) == 0 {
		return errors.New("foreach: missing buffer argument")
	}
	buffer, ok := vals[0].([]byte)
	if !ok {
		return errors.New("foreach: buffer argument must be a blob")
	}

	root := "$"
	if idxNum == 3 && len(vals) > 1 {
		if s, ok := vals[1].(string); ok {
			root = s
		}
	}

	rows, err := ForeachRows(buffer, root)
	if err != nil {
		return err
	}
	c.rows = rows
	c.pos = 0
	return nil
}

func (c *foreachCursor) Next() error {
	c.pos++
	return nil
}

func (c *foreachCursor) EOF() bool {
	return c.pos >= len(c.rows)
}

func (c *foreachCursor) Column(ctx *sqlite3.SQLiteContext, col int) error {
	row := c.rows[c.pos]
	switch col {
	case colTag:
		ctx.ResultInt64(int64(wire.MakeTag(row.Field, row.WireType)))
	case colField:
		ctx.ResultInt64(int64(row.Field))
	case colWireType:
		ctx.ResultInt(int(row.WireType))
	case colValue:
		ctx.ResultBlob(row.Value)
	case colParent:
		ctx.ResultNull()
	default:
		ctx.ResultNull()
	}
	return nil
}

func (c *foreachCursor) Rowid() (int64, error) {
	return int64(c.rows[c.pos].Tag), nil
}

func (c *foreachCursor) Close() error {
	return nil
}
