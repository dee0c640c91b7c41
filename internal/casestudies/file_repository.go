package casestudies

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository keeps the whole collection in one JSON array file.
// Every operation is a read of the full file and, for mutations, a
// rewrite of it; a single mutex serializes them so concurrent requests
// cannot lose updates.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) load() ([]CaseStudy, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []CaseStudy{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return []CaseStudy{}, nil
	}
	var items []CaseStudy
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return items, nil
}

func (r *FileRepository) save(items []CaseStudy) error {
	// Compact marshal keeps the opaque content blocks byte-for-byte;
	// indenting would rewrite the raw JSON inside them.
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	// Temp file + rename so a crash mid-write cannot truncate the store.
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".case-studies-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) ([]CaseStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRepository) GetByID(ctx context.Context, id int64) (CaseStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return CaseStudy{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return CaseStudy{}, ErrNotFound
}

func (r *FileRepository) Create(ctx context.Context, item CaseStudy) (CaseStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return CaseStudy{}, err
	}

	var maxID int64
	for _, existing := range items {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	item.ID = maxID + 1

	items = append(items, item)
	if err := r.save(items); err != nil {
		return CaseStudy{}, err
	}
	return item, nil
}

func (r *FileRepository) Update(ctx context.Context, id int64, patch Patch) (CaseStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return CaseStudy{}, err
	}
	for i := range items {
		if items[i].ID == id {
			patch.Apply(&items[i])
			if err := r.save(items); err != nil {
				return CaseStudy{}, err
			}
			return items[i], nil
		}
	}
	return CaseStudy{}, ErrNotFound
}

func (r *FileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := r.save(items); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
