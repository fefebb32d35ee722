package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionClosed = errors.New("session is closed")

// SessionFactory 绑定到一个 Engine，按需创建相互独立的 Session，可并发调用
type SessionFactory struct {
	engine *Engine
}

func NewSessionFactory(engine *Engine) *SessionFactory {
	return &SessionFactory{engine: engine}
}

func (f *SessionFactory) Engine() *Engine { return f.engine }

// New 创建会话；事务在首次使用时才开启，不会自动提交
func (f *SessionFactory) New(ctx context.Context) *Session {
	return &Session{
		id:     uuid.NewString(),
		ctx:    ctx,
		engine: f.engine,
	}
}

// Transaction 在一个会话内执行 fn：返回 nil 时提交，出错或 panic 时回滚，最后总是关闭会话
func (f *SessionFactory) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	s := f.New(ctx)
	defer func() {
		if r := recover(); r != nil {
			_ = s.Close()
			panic(r)
		}
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	tx, err := s.DB()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return s.Commit()
}

// Session 一个工作单元，不可在多个 goroutine 间并发使用
// 未显式 Commit 的修改在 Rollback/Close 时全部丢弃
type Session struct {
	id     string
	ctx    context.Context
	engine *Engine
	tx     *gorm.DB
	closed bool
}

func (s *Session) ID() string { return s.id }

// InTransaction 当前是否持有未结束的事务
func (s *Session) InTransaction() bool { return s.tx != nil }

// DB 返回会话内的事务句柄，必要时开启新事务
func (s *Session) DB() (*gorm.DB, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx, nil
	}
	tx := s.engine.db.WithContext(s.ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin session %s: %w", s.id, tx.Error)
	}
	s.tx = tx
	s.trace("begin")
	return tx, nil
}

// Commit 提交当前事务；没有进行中的事务时为空操作。之后再次使用会开启新事务
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit session %s: %w", s.id, err)
	}
	s.trace("commit")
	return nil
}

// Rollback 丢弃当前事务中的所有修改
func (s *Session) Rollback() error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.rollback()
}

// Close 回滚未提交的修改并释放连接，可重复调用
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	err := s.rollback()
	s.closed = true
	return err
}

func (s *Session) rollback() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback session %s: %w", s.id, err)
	}
	s.trace("rollback")
	return nil
}

func (s *Session) trace(event string) {
	if s.engine.echo {
		log.Printf("session %s %s", s.id, event)
	}
}
