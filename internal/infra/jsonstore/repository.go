package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// Repository persists the applicant collection as a single JSON file.
// Every operation takes the lock for its full read-modify-write cycle,
// so the file on disk is the only state shared between requests.
type Repository struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Repository {
	return &Repository{path: path}
}

// load reads the whole collection. A missing file is seeded with the
// fixed sample records so a fresh deployment starts with data.
func (r *Repository) load() ([]*domain.Applicant, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		seed := domain.Seed()
		if err := r.flush(seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	var list []*domain.Applicant
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.path, err)
	}
	return list, nil
}

// flush rewrites the whole collection. Write goes to a temp file first
// and is renamed over the target so a crash never leaves a partial file.
func (r *Repository) flush(list []*domain.Applicant) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

// List returns the full collection.
func (r *Repository) List(ctx context.Context) ([]*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Applicant, len(list))
	for i, a := range list {
		cp := *a
		out[i] = &cp
	}
	return out, nil
}

// Get returns the applicant with the given id.
func (r *Repository) Get(ctx context.Context, id int) (*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create assigns the next id (max existing + 1, 1001 when the
// collection is empty) and appends the record.
func (r *Repository) Create(ctx context.Context, a *domain.Applicant) (*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}

	maxID := 1000
	for _, existing := range list {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	cp := *a
	cp.ID = maxID + 1
	list = append(list, &cp)

	if err := r.flush(list); err != nil {
		return nil, err
	}
	out := cp
	return &out, nil
}

// Update merges the non-nil fields of p into the matching record.
func (r *Repository) Update(ctx context.Context, id int, p domain.Patch) (*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		if a.ID == id {
			p.Apply(a)
			if err := r.flush(list); err != nil {
				return nil, err
			}
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes the matching record.
func (r *Repository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, a := range list {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(list) {
		return domain.ErrNotFound
	}
	return r.flush(kept)
}

// Check reports whether the data file is readable, for health probes.
func (r *Repository) Check(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.load()
	return err
}
