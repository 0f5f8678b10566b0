package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// undoLog действия отката, накопленные хранилищами внутри транзакции
type undoLog struct {
	actions []func()
}

// TxManager менеджер "транзакций" для in-memory хранилищ
// Транзакции выполняются строго последовательно (эквивалент SERIALIZABLE),
// при ошибке изменения откатываются в обратном порядке.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает менеджер транзакций in-memory хранилищ
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	log := &undoLog{}
	defer func() {
		if p := recover(); p != nil {
			log.rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		log.rollback()
		return err
	}
	return nil
}

func (l *undoLog) rollback() {
	for i := len(l.actions) - 1; i >= 0; i-- {
		l.actions[i]()
	}
	l.actions = nil
}

// onRollback регистрирует действие отката, если вызов выполняется внутри транзакции
func onRollback(ctx context.Context, undo func()) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok {
		log.actions = append(log.actions, undo)
	}
}
