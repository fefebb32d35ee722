package db

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMalformedURL       = errors.New("malformed database url")
	ErrUnsupportedDialect = errors.New("unsupported database dialect")
)

const (
	DialectSQLite   = "sqlite"
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"

	memoryDatabase = ":memory:"
)

// URL 解析后的数据库连接串: dialect[+driver]://[user[:password]@]host[:port]/database[?params]
type URL struct {
	Dialect  string
	Driver   string
	Database string
	raw      string
	u        *url.URL
}

// ParseURL 解析连接串；格式错误或方言不支持时立即返回错误
func ParseURL(raw string) (URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return URL{}, fmt.Errorf("%w: empty", ErrMalformedURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Opaque != "" {
		return URL{}, fmt.Errorf("%w: %q has no dialect", ErrMalformedURL, raw)
	}

	dialect, driver, _ := strings.Cut(strings.ToLower(u.Scheme), "+")
	out := URL{Driver: driver, raw: raw, u: u}
	switch dialect {
	case "sqlite", "sqlite3":
		out.Dialect = DialectSQLite
		if u.Host != "" || u.User != nil {
			return URL{}, fmt.Errorf("%w: sqlite url must not have a host: %q", ErrMalformedURL, raw)
		}
		// sqlite:///rel.db -> rel.db, sqlite:////abs.db -> /abs.db
		out.Database = strings.TrimPrefix(u.Path, "/")
		if out.Database == "" {
			out.Database = memoryDatabase
		}
	case "mysql", "mariadb":
		out.Dialect = DialectMySQL
		out.Database = strings.TrimPrefix(u.Path, "/")
	case "postgres", "postgresql":
		out.Dialect = DialectPostgres
		out.Database = strings.TrimPrefix(u.Path, "/")
	default:
		return URL{}, fmt.Errorf("%w: %s", ErrUnsupportedDialect, dialect)
	}
	return out, nil
}

func (u URL) String() string { return u.raw }

// Redacted 隐藏密码，用于日志
func (u URL) Redacted() string {
	if u.u == nil {
		return ""
	}
	return u.u.Redacted()
}

func (u URL) IsMemory() bool {
	return u.Dialect == DialectSQLite && (u.Database == memoryDatabase || u.u.Query().Get("mode") == "memory")
}

// Query 返回连接串中的查询参数副本
func (u URL) Query() url.Values {
	if u.u == nil {
		return url.Values{}
	}
	return u.u.Query()
}
