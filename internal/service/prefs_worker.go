package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zgkmail/watchornot/watchornot-go/internal/repository"
)

// PrefsWorker listens for PostgreSQL NOTIFY on the 'rating_changes' channel
// and batches preference-aggregate recomputations. If a user hammers the
// thumbs within one window, their aggregates are rebuilt once.
type PrefsWorker struct {
	pool    *pgxpool.Pool
	prefs   *repository.PreferenceRepo
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // user IDs waiting for recomputation
}

// NewPrefsWorker creates an aggregate recomputation worker.
func NewPrefsWorker(pool *pgxpool.Pool, prefs *repository.PreferenceRepo, cache *CacheService) *PrefsWorker {
	return &PrefsWorker{
		pool:    pool,
		prefs:   prefs,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for rating_changes notifications and processing batches.
func (w *PrefsWorker) Start(ctx context.Context) {
	log.Printf("prefs-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("prefs-worker: stopping (context cancelled)")
				return
			}
			log.Printf("prefs-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("prefs-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on rating_changes,
// and processes notifications in batched windows.
func (w *PrefsWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN rating_changes")
	if err != nil {
		return err
	}
	log.Println("prefs-worker: listening on rating_changes")

	// Start the batch flush goroutine
	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		userID := notification.Payload
		if userID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[userID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and recomputes aggregates.
func (w *PrefsWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and rebuilds each user's aggregates.
func (w *PrefsWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	recomputed := 0
	for userID := range batch {
		if err := w.prefs.RecomputeUser(ctx, userID); err != nil {
			log.Printf("prefs-worker: recompute error for user: %v", err)
			continue
		}

		// Invalidate Redis cache so next read gets fresh data
		if w.cache != nil {
			if err := w.cache.InvalidateUser(ctx, userID); err != nil {
				log.Printf("prefs-worker: cache invalidate error: %v", err)
			}
		}

		recomputed++
	}

	if recomputed > 0 {
		log.Printf("prefs-worker: batch complete — %d users recomputed (from %d notifications)",
			recomputed, len(batch))
	}
}
