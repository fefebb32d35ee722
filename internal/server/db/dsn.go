package db

import (
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
)

// SQLite 并发写入时等待锁的时间
const sqliteBusyTimeout = 5000

// DSN 构造驱动可用的连接串
func DSN(u URL, args ConnectArgs) (string, error) {
	switch u.Dialect {
	case DialectSQLite:
		return sqliteDSN(u, args), nil
	case DialectMySQL:
		return mysqlDSN(u)
	case DialectPostgres:
		return postgresDSN(u), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDialect, u.Dialect)
	}
}

func sqliteDSN(u URL, args ConnectArgs) string {
	busy := 0
	if !args.sameThreadOnly() {
		busy = sqliteBusyTimeout
	}
	v := sqlitePragmaParams(busy, true)
	for k, vals := range u.Query() {
		for _, val := range vals {
			v.Add(k, val)
		}
	}
	if len(v) == 0 {
		return u.Database
	}
	return u.Database + "?" + v.Encode()
}

func mysqlDSN(u URL) (string, error) {
	c := gomysql.NewConfig()
	c.Net = "tcp"
	c.Addr = u.u.Host
	c.DBName = u.Database
	if u.u.User != nil {
		c.User = u.u.User.Username()
		c.Passwd, _ = u.u.User.Password()
	}
	// 默认参数
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	for k, vals := range u.Query() {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]
		switch k {
		case "parseTime":
			c.ParseTime = val == "true" || val == "1"
		case "loc":
			loc, err := time.LoadLocation(val)
			if err != nil {
				return "", fmt.Errorf("%w: loc=%s: %v", ErrMalformedURL, val, err)
			}
			c.Loc = loc
		default:
			c.Params[k] = val
		}
	}
	return c.FormatDSN(), nil
}

// pgx 直接接受 URL，只需统一 scheme
func postgresDSN(u URL) string {
	cp := *u.u
	cp.Scheme = "postgres"
	return cp.String()
}
