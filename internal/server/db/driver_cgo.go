//go:build cgo_sqlite

// 使用 mattn/go-sqlite3（需要 CGO_ENABLED=1，构建参数 -tags cgo_sqlite）
package db

import (
	"net/url"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteDriverName = "sqlite3"
	sqliteDriverType = "cgo"
)

func sqlitePragmaParams(busyTimeoutMS int, foreignKeys bool) url.Values {
	v := url.Values{}
	if busyTimeoutMS > 0 {
		v.Set("_busy_timeout", strconv.Itoa(busyTimeoutMS))
	}
	if foreignKeys {
		v.Set("_foreign_keys", "1")
	}
	return v
}
