package storage

import (
	"context"
	"sync"

	"github.com/san-kum/physics3/internal/physics3"
)

// Entry is the outcome of decoding one catalog file. Exactly one of Doc and
// Err is set.
type Entry struct {
	Name string
	Path string
	Doc  *physics3.Physics3
	Err  error
}

// LoadAll decodes every matching file on a bounded worker pool. Entries are
// returned in List order. Per-file decode failures are recorded on the entry;
// only listing errors and context cancellation fail the call.
func (s *Store) LoadAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(names))
	jobs := make(chan int)

	workers := s.workers
	if len(names) < workers {
		workers = len(names)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				name := names[idx]
				doc, err := s.Load(name)
				entries[idx] = Entry{Name: name, Path: s.Path(name), Doc: doc, Err: err}
				if err != nil {
					s.log.Debug("skipping document", "name", name, "err", err)
				}
			}
		}()
	}

	var cancelled error
feed:
	for i := range names {
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return entries, nil
}
