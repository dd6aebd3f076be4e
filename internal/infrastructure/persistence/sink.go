package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"scamtrap/internal/infrastructure/database"
	"scamtrap/pkg/logger"
)

const (
	defaultQueueSize = 256
	insertTimeout    = 5 * time.Second
)

const insertMessageSQL = `
	INSERT INTO scam_messages (id, message_text, is_scam, confidence_score, language, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Entry is one classified message headed for external storage
type Entry struct {
	ID         uuid.UUID
	Message    string
	IsScam     bool
	Confidence float64
	Language   string
	CreatedAt  time.Time
}

// Sink stores classified messages in PostgreSQL on a best-effort,
// fire-and-forget basis. The response path never waits on it: entries
// are queued on a bounded channel and dropped when the queue is full,
// and insert failures are logged and swallowed. The classification
// response never depends on the sink succeeding.
type Sink struct {
	db      *database.PostgresDB
	logger  *logger.Logger
	queue   chan Entry
	enabled bool

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	done      chan struct{}
}

// NewSink creates a sink backed by db. A nil db yields a disabled sink
// whose Enqueue is a no-op, so callers never have to branch.
func NewSink(db *database.PostgresDB, queueSize int, log *logger.Logger) *Sink {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Sink{
		db:      db,
		logger:  log.WithComponent("persistence"),
		queue:   make(chan Entry, queueSize),
		enabled: db != nil,
		done:    make(chan struct{}),
	}
}

// Enabled reports whether the sink has a backing store
func (s *Sink) Enabled() bool {
	return s.enabled
}

// Start launches the background writer. Safe to call on a disabled
// sink.
func (s *Sink) Start(ctx context.Context) {
	if !s.enabled {
		return
	}
	s.startOnce.Do(func() {
		s.started = true
		go s.run(ctx)
	})
}

// Enqueue hands an entry to the background writer without blocking.
// When the queue is full the entry is dropped.
func (s *Sink) Enqueue(e Entry) {
	if !s.enabled {
		return
	}
	select {
	case s.queue <- e:
	default:
		s.logger.Debug().Str("id", e.ID.String()).Msg("persistence queue full, dropping entry")
	}
}

// Close stops accepting entries and waits for the writer to drain
func (s *Sink) Close() {
	if !s.enabled {
		return
	}
	s.stopOnce.Do(func() {
		close(s.queue)
		if s.started {
			<-s.done
		}
	})
}

func (s *Sink) run(ctx context.Context) {
	defer close(s.done)

	for e := range s.queue {
		s.insert(ctx, e)
	}
}

func (s *Sink) insert(ctx context.Context, e Entry) {
	insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	err := s.db.Exec(insertCtx, insertMessageSQL,
		e.ID, e.Message, e.IsScam, e.Confidence, e.Language, e.CreatedAt)
	if err != nil {
		// Best effort only: log and move on
		s.logger.Warn().Err(err).Str("id", e.ID.String()).Msg("failed to persist message")
		return
	}

	s.logger.Debug().Str("id", e.ID.String()).Bool("is_scam", e.IsScam).Msg("message persisted")
}
