// Package store holds the client-side cache of content packages shared
// by the CLI flows (generate, delete, revise, review). All mutation
// goes through the defined entry points; flows never hold references
// into the backing slice.
package store

import (
	"sort"
	"sync"

	"github.com/mgrinnell/lectern/internal/domain"
)

// PackageStore is an observable in-memory cache of packages. Every
// entry is a possibly stale copy of service-owned state, replaced
// wholesale on re-fetch.
type PackageStore struct {
	mu       sync.RWMutex
	packages map[string]domain.ContentPackage
	subs     []chan struct{}
}

// NewPackageStore creates an empty store.
func NewPackageStore() *PackageStore {
	return &PackageStore{
		packages: make(map[string]domain.ContentPackage),
	}
}

// Add caches a newly created package (append-on-create).
func (s *PackageStore) Add(pkg domain.ContentPackage) {
	s.mu.Lock()
	s.packages[pkg.ID] = pkg
	s.mu.Unlock()
	s.notify()
}

// Upsert overwrites the cached copy with a server response
// (response-driven update). Local assumptions never survive a response
// body.
func (s *PackageStore) Upsert(pkg domain.ContentPackage) {
	s.Add(pkg)
}

// Remove drops a package from the cache (filter-on-delete).
func (s *PackageStore) Remove(id string) {
	s.mu.Lock()
	delete(s.packages, id)
	s.mu.Unlock()
	s.notify()
}

// ReplaceAll swaps the entire cache for a fresh listing
// (replace-on-refetch).
func (s *PackageStore) ReplaceAll(pkgs []domain.ContentPackage) {
	next := make(map[string]domain.ContentPackage, len(pkgs))
	for _, p := range pkgs {
		next[p.ID] = p
	}
	s.mu.Lock()
	s.packages = next
	s.mu.Unlock()
	s.notify()
}

// Get returns the cached copy of a package, if any.
func (s *PackageStore) Get(id string) (domain.ContentPackage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packages[id]
	return p, ok
}

// List returns all cached packages, newest first.
func (s *PackageStore) List() []domain.ContentPackage {
	s.mu.RLock()
	out := make([]domain.ContentPackage, 0, len(s.packages))
	for _, p := range s.packages {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Len reports the number of cached packages.
func (s *PackageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.packages)
}

// Subscribe returns a channel that receives a signal after every
// mutation. Signals are coalesced: a slow consumer sees at least one
// signal for any burst of changes.
func (s *PackageStore) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *PackageStore) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
