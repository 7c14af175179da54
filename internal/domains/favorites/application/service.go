package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Apurer/storefront-api/internal/domains/favorites/domain"
	"github.com/Apurer/storefront-api/internal/domains/favorites/ports"
	"github.com/Apurer/storefront-api/internal/shared/sessionlock"
)

const (
	// DefaultNamespace prefixes every storage key written by the service.
	DefaultNamespace = "storefront-favorites"
	// DefaultCacheSize bounds how many session lists stay hydrated in memory.
	DefaultCacheSize = 10000
)

// Service keeps one favorites list per session, hydrated lazily from storage
// and written back after every mutation on a best-effort basis. Hydrated
// lists live in a bounded LRU; an evicted list is read back from storage on
// next use.
type Service struct {
	storage   ports.Storage
	namespace string
	logger    *slog.Logger
	now       func() time.Time
	cacheSize int

	locks sessionlock.Locks
	lists *lru.Cache[string, *domain.List]
}

type Option func(*Service)

// WithNamespace overrides the storage key namespace.
func WithNamespace(ns string) Option {
	return func(s *Service) {
		if ns = strings.TrimSpace(ns); ns != "" {
			s.namespace = ns
		}
	}
}

// WithLogger injects the logger used for storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheSize bounds the number of hydrated session lists kept in memory.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithClock overrides the time source stamped into addedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage ports.Storage, opts ...Option) *Service {
	s := &Service{
		storage:   storage,
		namespace: DefaultNamespace,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	// lru.New only fails for non-positive sizes, which WithCacheSize filters out.
	s.lists, _ = lru.New[string, *domain.List](s.cacheSize)
	return s
}

// StorageKey returns the durable storage key of a session.
func (s *Service) StorageKey(sessionID string) string {
	return s.namespace + ":" + sessionID
}

func (s *Service) List(ctx context.Context, sessionID string) (ports.View, error) {
	var view ports.View
	err := s.withSession(ctx, sessionID, func(list *domain.List) (bool, error) {
		view = s.view(list)
		return false, nil
	})
	return view, err
}

// Toggle favorites an absent product or removes a present one.
func (s *Service) Toggle(ctx context.Context, sessionID string, item domain.Item) (domain.ToggleResult, ports.View, error) {
	var (
		result domain.ToggleResult
		view   ports.View
	)
	err := s.withSession(ctx, sessionID, func(list *domain.List) (bool, error) {
		r, err := list.Toggle(item, s.now())
		if err != nil {
			return false, err
		}
		result = r
		view = s.view(list)
		return true, nil
	})
	if err != nil {
		return "", ports.View{}, err
	}
	return result, view, nil
}

func (s *Service) Favorite(ctx context.Context, sessionID string, item domain.Item) (ports.View, error) {
	var view ports.View
	err := s.withSession(ctx, sessionID, func(list *domain.List) (bool, error) {
		added, err := list.Favorite(item, s.now())
		if err != nil {
			return false, err
		}
		view = s.view(list)
		return added, nil
	})
	return view, err
}

func (s *Service) Unfavorite(ctx context.Context, sessionID string, productID int64) (ports.View, error) {
	var view ports.View
	err := s.withSession(ctx, sessionID, func(list *domain.List) (bool, error) {
		removed := list.Unfavorite(productID)
		view = s.view(list)
		return removed, nil
	})
	return view, err
}

func (s *Service) IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error) {
	var found bool
	err := s.withSession(ctx, sessionID, func(list *domain.List) (bool, error) {
		found = list.Contains(productID)
		return false, nil
	})
	return found, err
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.withSession(ctx, sessionID, func(list *domain.List) (bool, error) {
		list.Clear()
		return true, nil
	})
}

func (s *Service) view(list *domain.List) ports.View {
	return ports.View{Items: list.Items(), FeedbackVisible: list.FeedbackVisible(s.now())}
}

// withSession runs fn under the session lock; when fn reports a change the
// full snapshot is persisted. A list that could not be read from storage is
// served empty but neither cached nor written back, so the stored snapshot
// survives a transient read failure.
func (s *Service) withSession(ctx context.Context, sessionID string, fn func(*domain.List) (bool, error)) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSession
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	list, cached := s.lists.Get(sessionID)
	durable := true
	if !cached {
		list, durable = s.hydrate(ctx, sessionID)
	}
	changed, err := fn(list)
	if err != nil {
		return mapError(err)
	}
	if !durable {
		if changed {
			s.logger.WarnContext(ctx, "favorites change not persisted; storage unreadable", slog.String("key", s.StorageKey(sessionID)))
		}
		return nil
	}
	if changed {
		s.persist(ctx, sessionID, list)
	}
	s.lists.Add(sessionID, list)
	return nil
}

// hydrate loads the stored list. The boolean is false when storage could not
// be read and the returned list is only a placeholder.
func (s *Service) hydrate(ctx context.Context, sessionID string) (*domain.List, bool) {
	key := s.StorageKey(sessionID)
	data, found, err := s.storage.Read(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "favorites storage read failed; serving empty list", slog.String("key", key), slog.String("error", err.Error()))
		return domain.NewList(nil), false
	}
	if !found || len(data) == 0 {
		return domain.NewList(nil), true
	}
	items, err := domain.DecodeSnapshot(data)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt favorites snapshot", slog.String("key", key), slog.String("error", err.Error()))
		return domain.NewList(nil), true
	}
	return domain.NewList(items), true
}

func (s *Service) persist(ctx context.Context, sessionID string, list *domain.List) {
	key := s.StorageKey(sessionID)
	data, err := domain.EncodeSnapshot(list.Items())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode favorites snapshot", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Write(ctx, key, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist favorites", slog.String("key", key), slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
