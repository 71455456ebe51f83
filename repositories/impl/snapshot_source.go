package impl

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// snapshotSub adapts a Firestore snapshot listener to the livelist
// subscription contract: every backend tick delivers the authoritative
// current window, newest-first. The updates channel holds at most the
// latest window; stale windows are dropped rather than queued.
type snapshotSub[T any] struct {
	cancel context.CancelFunc
	ch     chan []T
	err    error
}

func newSnapshotSub[T any](ctx context.Context, q firestore.Query, decode func(*firestore.DocumentSnapshot) (T, error)) *snapshotSub[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &snapshotSub[T]{cancel: cancel, ch: make(chan []T, 1)}
	go s.run(ctx, q, decode)
	return s
}

func (s *snapshotSub[T]) run(ctx context.Context, q firestore.Query, decode func(*firestore.DocumentSnapshot) (T, error)) {
	defer close(s.ch)
	it := q.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return
			}
			s.err = err
			return
		}

		rows, err := decodeAll(snap.Documents, decode)
		if err != nil {
			s.err = err
			return
		}

		// Replace any undelivered window with the fresh one.
		select {
		case s.ch <- rows:
		default:
			select {
			case <-s.ch:
			default:
			}
			s.ch <- rows
		}
	}
}

func (s *snapshotSub[T]) Updates() <-chan []T { return s.ch }

func (s *snapshotSub[T]) Err() error { return s.err }

func (s *snapshotSub[T]) Stop() { s.cancel() }

func decodeAll[T any](docs *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer docs.Stop()
	var rows []T
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row, err := decode(doc)
		if err != nil {
			log.Warn().Err(err).Str("doc", doc.Ref.Path).Msg("skipping undecodable document")
			continue
		}
		rows = append(rows, row)
	}
}
