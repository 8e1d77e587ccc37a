// Command sqliteprotobuf demonstrates registering the extract(), to_json(),
// and foreach/each SQL bindings against a real database/sql connection and
// running a few queries against a hand-built protobuf wire-format blob.
package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/mattn/go-sqlite3"

	"github.com/andreasbell/sqlite-protobuf/sqlfn"
)

func init() {
	sql.Register("sqlite3_protobuf", &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return sqlfn.Register(conn)
		},
	})
}

func main() {
	db, err := sql.Open("sqlite3_protobuf", ":memory:")
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE VIRTUAL TABLE pb_foreach USING foreach`); err != nil {
		log.Fatalf("failed to create foreach virtual table: %v", err)
	}

	// field 1 (LEN "hello"), field 2 (varint 42)
	blob := []byte{0x0a, 0x05, 'h', 'e', 'l', 'l', 'o', 0x10, 0x2a}

	fmt.Println("extract():")
	var s string
	if err := db.QueryRow(`SELECT extract(?, '$.1', 'string')`, blob).Scan(&s); err != nil {
		log.Fatalf("extract string failed: %v", err)
	}
	fmt.Printf("  $.1 as string = %q\n", s)

	var n int64
	if err := db.QueryRow(`SELECT extract(?, '$.2', 'int32')`, blob).Scan(&n); err != nil {
		log.Fatalf("extract int32 failed: %v", err)
	}
	fmt.Printf("  $.2 as int32  = %d\n", n)

	fmt.Println("\nto_json():")
	var j string
	if err := db.QueryRow(`SELECT to_json(?)`, blob).Scan(&j); err != nil {
		log.Fatalf("to_json failed: %v", err)
	}
	fmt.Printf("  %s\n", j)

	fmt.Println("\nforeach:")
	rows, err := db.Query(`SELECT tag, field, wiretype, value FROM pb_foreach WHERE buffer = ?`, blob)
	if err != nil {
		log.Fatalf("foreach query failed: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag, field, wireType int64
		var value []byte
		if err := rows.Scan(&tag, &field, &wireType, &value); err != nil {
			log.Fatalf("foreach scan failed: %v", err)
		}
		fmt.Printf("  tag=%d field=%d wiretype=%d value=%v\n", tag, field, wireType, value)
	}
}
