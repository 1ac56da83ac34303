// Package memory keeps every repository in process memory behind a single lock.
// Uniqueness and cascade semantics match the Postgres schema, so it backs the
// test suites and STORAGE_DRIVER=memory.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	listings  map[string]entity.Listing
	inquiries map[string]entity.Inquiry
	contacts  map[string]entity.ContactMessage
	news      map[string]entity.NewsItem

	// seq orders records created within the same clock tick.
	seq   int64
	order map[string]int64
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		listings:  make(map[string]entity.Listing),
		inquiries: make(map[string]entity.Inquiry),
		contacts:  make(map[string]entity.ContactMessage),
		news:      make(map[string]entity.NewsItem),
		order:     make(map[string]int64),
		now:       time.Now,
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Listings() *ListingRepository { return &ListingRepository{s: s} }
func (s *Store) Inquiries() *InquiryRepository {
	return &InquiryRepository{s: s}
}
func (s *Store) Contacts() *ContactRepository { return &ContactRepository{s: s} }
func (s *Store) News() *NewsRepository        { return &NewsRepository{s: s} }

// newID must be called with the write lock held.
func (s *Store) newID() string {
	id := uuid.NewString()
	s.seq++
	s.order[id] = s.seq
	return id
}

// newer reports whether record a was created after record b.
func (s *Store) newer(aID string, aAt time.Time, bID string, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return s.order[aID] > s.order[bID]
}

// deleteListingLocked removes a listing and its inquiries.
func (s *Store) deleteListingLocked(id string) {
	for qid, q := range s.inquiries {
		if q.ListingID == id {
			delete(s.inquiries, qid)
			delete(s.order, qid)
		}
	}
	delete(s.listings, id)
	delete(s.order, id)
}

func cloneStrings(v []string) []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}

func cloneListing(l entity.Listing) entity.Listing {
	l.ImageURLs = cloneStrings(l.ImageURLs)
	return l
}

func sortNewestFirst[T any](s *Store, items []T, key func(T) (string, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		ai, at := key(items[i])
		bi, bt := key(items[j])
		return s.newer(ai, at, bi, bt)
	})
}

// page applies offset/limit; a non-positive limit returns everything after offset.
func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
