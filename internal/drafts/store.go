package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"draftline/internal/fileutil"
	"draftline/internal/logging"
	"draftline/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// Store is the rolling, bounded draft collection on disk. Every
// read-modify-write holds an advisory lock on <path>.lock so overlapping
// invocations serialize instead of losing each other's writes.
type Store struct {
	path   string
	limit  int
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore opens the store at path with the given retention ceiling.
func NewStore(path string, limit int, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		limit:  limit,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "draft-store"),
	}
}

// Path returns the store file location.
func (s *Store) Path() string { return s.path }

// Load returns the persisted drafts. A missing file is an empty store; an
// unreadable or corrupt file is logged and also treated as empty.
func (s *Store) Load() []Draft {
	list, err := readDrafts(s.path)
	if err == nil {
		return list
	}
	if !errors.Is(err, fs.ErrNotExist) {
		logging.WarnWithContext(s.logger, "draft store unreadable; starting empty", "draft_store_corrupt",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect or remove the store file"),
			logging.String(logging.FieldImpact, "existing drafts will be replaced on the next write"),
		)
	}
	return nil
}

// Merge folds incoming drafts into the store under the lock.
func (s *Store) Merge(ctx context.Context, incoming []Draft) (MergeResult, error) {
	var result MergeResult
	err := s.withLock(ctx, func() error {
		merged, res := Merge(s.Load(), incoming, s.limit)
		result = res
		return s.write(merged)
	})
	return result, err
}

// Update applies fn to the draft with id and persists the store. It returns
// services.ErrNotFound when no draft has that id.
func (s *Store) Update(ctx context.Context, id string, fn func(*Draft)) error {
	return s.withLock(ctx, func() error {
		list := s.Load()
		for i := range list {
			if list[i].ID == id {
				fn(&list[i])
				SortNewestFirst(list)
				return s.write(list)
			}
		}
		return services.Wrap(services.ErrNotFound, "drafts", "update",
			fmt.Sprintf("Draft %s not in store", id), nil)
	})
}

// Filter narrows List output. Day matches the UTC date of created_at.
type Filter struct {
	Status Status
	Day    string
	Limit  int
}

// List returns stored drafts matching f, newest first.
func (s *Store) List(f Filter) []Draft {
	var out []Draft
	for _, d := range s.Load() {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.Day != "" && d.CreatedAt.UTC().Format("2006-01-02") != f.Day {
			continue
		}
		out = append(out, d)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

func (s *Store) write(list []Draft) error {
	if list == nil {
		list = []Draft{}
	}
	if err := fileutil.WriteJSONAtomic(s.path, list); err != nil {
		return services.Wrap(services.ErrTransient, "drafts", "write store",
			"Failed to persist draft store", err)
	}
	return nil
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire draft store lock: %w", err)
	}
	if !locked {
		return errors.New("acquire draft store lock: not acquired")
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release draft store lock", logging.Error(err))
		}
	}()
	return fn()
}

func readDrafts(path string) ([]Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []Draft
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return list, nil
}
