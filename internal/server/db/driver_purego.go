//go:build !cgo_sqlite

package db

import (
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	sqliteDriverType = "purego"
)

// modernc 通过 _pragma=name(value) 设置 PRAGMA
func sqlitePragmaParams(busyTimeoutMS int, foreignKeys bool) url.Values {
	v := url.Values{}
	if busyTimeoutMS > 0 {
		v.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	}
	if foreignKeys {
		v.Add("_pragma", "foreign_keys(1)")
	}
	return v
}
