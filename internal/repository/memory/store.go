// Package memory holds the keg tracking domain in process memory. A Store is
// safe for concurrent use; every method is atomic with respect to the others.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/pkg/kegid"
)

// Store owns every entity collection behind a single lock.
type Store struct {
	mu sync.RWMutex

	kegs                map[string]models.Keg
	qrIndex             map[string]string
	customers           map[string]models.Customer
	activities          []models.Activity
	orders              map[string]models.Order
	customerNotes       map[string]models.CustomerNote
	ciderTypes          map[string]models.CiderType
	ciderBatches        map[string]models.CiderBatch
	ciderIngredients    map[string]models.CiderIngredient
	fermentationBatches map[string]models.FermentationBatch

	now          func() time.Time
	newID        func() string
	kegIDRetries int
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the UUID generator used for every entity but kegs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithKegIDRetries sets how many generated keg ids may collide before
// creation gives up.
func WithKegIDRetries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.kegIDRetries = n
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		kegs:                make(map[string]models.Keg),
		qrIndex:             make(map[string]string),
		customers:           make(map[string]models.Customer),
		orders:              make(map[string]models.Order),
		customerNotes:       make(map[string]models.CustomerNote),
		ciderTypes:          make(map[string]models.CiderType),
		ciderBatches:        make(map[string]models.CiderBatch),
		ciderIngredients:    make(map[string]models.CiderIngredient),
		fermentationBatches: make(map[string]models.FermentationBatch),
		now:                 time.Now,
		newID:               uuid.NewString,
		kegIDRetries:        kegid.DefaultAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func notFound(entity, id string) error {
	return &models.NotFoundError{Entity: entity, ID: id}
}

// collect copies the values of m that match keep, cloned, into a slice.
func collect[T any](m map[string]T, keep func(T) bool, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

// newestFirst orders by t descending, breaking ties on id so results are stable.
func newestFirst(a, b time.Time, idA, idB string) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

func byName(a, b, idA, idB string) int {
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

func sortKegs(kegs []models.Keg) {
	slices.SortFunc(kegs, func(a, b models.Keg) int {
		return newestFirst(a.LastUpdated, b.LastUpdated, a.ID, b.ID)
	})
}
