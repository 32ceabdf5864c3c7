// Package favorites serializes ledger persistence through a single writer
// goroutine so concurrent sessions never interleave partial writes.
package favorites

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_persister.go -package=mocks github.com/MrSnakeDoc/georepo/internal/favorites Persister

import (
	"context"
	"errors"
	"sync"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/logger"
)

// ErrWriterClosed is returned by Save after Close.
var ErrWriterClosed = errors.New("favorites writer closed")

// Persister loads and stores whole ledgers, keyed by owner.
type Persister interface {
	LoadLedger(ctx context.Context, owner string) (domain.LedgerState, error)
	SaveLedger(ctx context.Context, owner string, state domain.LedgerState) error
}

type saveRequest struct {
	ctx   context.Context
	owner string
	state domain.LedgerState
	reply chan error
}

// Writer owns all writes to a Persister. Saves are applied in arrival
// order; each one replaces the owner's whole ledger.
type Writer struct {
	persister Persister
	logger    logger.Logger
	requests  chan saveRequest
	done      chan struct{}

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewWriter starts the writer goroutine.
func NewWriter(p Persister, log logger.Logger) *Writer {
	w := &Writer{
		persister: p,
		logger:    log,
		requests:  make(chan saveRequest),
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	defer close(w.done)
	for req := range w.requests {
		err := w.persister.SaveLedger(req.ctx, req.owner, req.state)
		if err != nil {
			err = &domain.PersistenceFailure{Owner: req.owner, Err: err}
			w.logger.Warn("failed to persist favorites",
				logger.String("owner", req.owner),
				logger.Error(err))
		}
		req.reply <- err
	}
}

// Load reads an owner's ledger. Reads go straight to the persister.
func (w *Writer) Load(ctx context.Context, owner string) (domain.LedgerState, error) {
	return w.persister.LoadLedger(ctx, owner)
}

// Save queues a write and waits for it. Failures come back as
// *domain.PersistenceFailure.
func (w *Writer) Save(ctx context.Context, owner string, state domain.LedgerState) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWriterClosed
	}

	req := saveRequest{
		ctx:   context.WithoutCancel(ctx),
		owner: owner,
		state: state,
		reply: make(chan error, 1),
	}

	select {
	case w.requests <- req:
	case <-ctx.Done():
		return &domain.PersistenceFailure{Owner: owner, Err: ctx.Err()}
	}

	// Once accepted the write completes even if the caller gives up.
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return &domain.PersistenceFailure{Owner: owner, Err: ctx.Err()}
	}
}

// Close drains pending writes and stops the goroutine.
func (w *Writer) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.requests)
		w.mu.Unlock()
		<-w.done
	})
}
