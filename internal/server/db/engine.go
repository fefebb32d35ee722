package db

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"versozap/internal/config"
)

// Engine 进程级数据库句柄，启动时创建一次，之后只读共享
type Engine struct {
	db          *gorm.DB
	url         URL
	echo        bool
	connectArgs ConnectArgs
}

type engineOptions struct {
	logWriter   io.Writer
	connectArgs ConnectArgs
}

type Option func(*engineOptions)

// WithLogWriter SQL 日志输出位置，默认 os.Stdout
func WithLogWriter(w io.Writer) Option {
	return func(o *engineOptions) { o.logWriter = w }
}

// WithConnectArgs 覆盖按连接串推导出的驱动参数
func WithConnectArgs(args ConnectArgs) Option {
	return func(o *engineOptions) { o.connectArgs = args.Clone() }
}

// NewEngine 根据配置创建数据库引擎；连接串错误或驱动不可用时直接返回错误，不重试
func NewEngine(cfg config.Database, opts ...Option) (*Engine, error) {
	raw := cfg.URLOrDefault()
	o := engineOptions{logWriter: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.connectArgs == nil {
		o.connectArgs = ConnectArgsFor(raw)
	}

	u, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}
	dialector, err := Dialector(u, o.connectArgs)
	if err != nil {
		return nil, err
	}

	return openEngine(u, dialector, cfg.EchoOrDefault(), o)
}

func openEngine(u URL, dialector gorm.Dialector, echo bool, o engineOptions) (*Engine, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger(o.logWriter, echo),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", u.Redacted(), err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		// 连接池已打开，失败时需要释放
		if c, ok := gdb.ConnPool.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("open %s: %w", u.Redacted(), err)
	}
	// 内存库每个连接各自独立，必须固定为单连接
	if u.Dialect == DialectSQLite && (u.IsMemory() || o.connectArgs.sameThreadOnly()) {
		sqlDB.SetMaxOpenConns(1)
	}

	if echo {
		log.Printf("数据库引擎已创建: %s (driver=%s)", u.Redacted(), driverName(u))
	}
	return &Engine{db: gdb, url: u, echo: echo, connectArgs: o.connectArgs}, nil
}

// Dialector 为解析后的连接串选择 GORM 方言
func Dialector(u URL, args ConnectArgs) (gorm.Dialector, error) {
	dsn, err := DSN(u, args)
	if err != nil {
		return nil, err
	}
	switch u.Dialect {
	case DialectSQLite:
		return &sqlite.Dialector{DriverName: sqliteDriverName, DSN: dsn}, nil
	case DialectMySQL:
		return mysql.Open(dsn), nil
	case DialectPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, u.Dialect)
	}
}

func driverName(u URL) string {
	switch u.Dialect {
	case DialectSQLite:
		return sqliteDriverName + "/" + sqliteDriverType
	case DialectMySQL:
		return "mysql"
	case DialectPostgres:
		return "pgx"
	}
	return u.Dialect
}

// DB 返回共享的 GORM 句柄（自动提交），需要工作单元时请使用 SessionFactory
func (e *Engine) DB() *gorm.DB { return e.db }

func (e *Engine) URL() URL { return e.url }

func (e *Engine) Echo() bool { return e.echo }

// ConnectArgs 返回副本，避免调用方修改引擎内部状态
func (e *Engine) ConnectArgs() ConnectArgs { return e.connectArgs.Clone() }

func (e *Engine) Dialect() string { return e.url.Dialect }

func (e *Engine) Driver() string { return driverName(e.url) }

// Ping 检查底层连接可用
func (e *Engine) Ping(ctx context.Context) error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (e *Engine) Close() error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
