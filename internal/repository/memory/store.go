// Package memory keeps repositories in process memory. Used when no
// DATABASE_URL is configured and by service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/domain/repositories"
)

// Store backs the rule, document and history repositories
type Store struct {
	mu        sync.RWMutex
	rules     map[string]models.RuleBase
	documents map[string]models.Document
	children  map[string][]string // parent id -> child ids in insertion order
	history   []models.PromptRecord
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		rules:     make(map[string]models.RuleBase),
		documents: make(map[string]models.Document),
		children:  make(map[string][]string),
		now:       time.Now,
	}
}

// Rules returns the store as a RuleRepository
func (s *Store) Rules() *RuleRepository { return &RuleRepository{s: s} }

// Documents returns the store as a DocumentRepository
func (s *Store) Documents() *DocumentRepository { return &DocumentRepository{s: s} }

// History returns the store as a HistoryRepository
func (s *Store) History() *HistoryRepository { return &HistoryRepository{s: s} }

// ExecTx runs fn with an undo log. If fn fails, the writes it made through
// the store's repositories are reverted newest first. Writes made outside
// the transaction are left alone.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if undoFrom(ctx) != nil {
		return fn(ctx)
	}

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, undoKey, log)); err != nil {
		s.mu.Lock()
		for i := len(log.steps) - 1; i >= 0; i-- {
			log.steps[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

type undoContextKey string

const undoKey undoContextKey = "docstudio_memory_undo"

// undoLog steps run with s.mu held
type undoLog struct {
	steps []func()
}

func undoFrom(ctx context.Context) *undoLog {
	log, _ := ctx.Value(undoKey).(*undoLog)
	return log
}

// record adds step to the transaction in ctx, if any. Callers hold s.mu.
func record(ctx context.Context, step func()) {
	if log := undoFrom(ctx); log != nil {
		log.steps = append(log.steps, step)
	}
}

type RuleRepository struct{ s *Store }

func (r *RuleRepository) List(_ context.Context) ([]models.RuleBase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.RuleBase, 0, len(r.s.rules))
	for _, rule := range r.s.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RuleName == out[j].RuleName {
			return out[i].RuleID < out[j].RuleID
		}
		return out[i].RuleName < out[j].RuleName
	})
	return out, nil
}

func (r *RuleRepository) GetByID(_ context.Context, id string) (*models.RuleBase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rule, ok := r.s.rules[id]
	if !ok {
		return nil, fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}
	return &rule, nil
}

func (r *RuleRepository) Upsert(ctx context.Context, rule *models.RuleBase) error {
	if rule.RuleID == "" {
		return fmt.Errorf("%w: ruleId is required", domain.ErrValidation)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UnixMilli()
	stored := *rule
	existing, existed := r.s.rules[rule.RuleID]
	if existed {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.s.rules[rule.RuleID] = stored
	record(ctx, func() {
		if existed {
			r.s.rules[rule.RuleID] = existing
		} else {
			delete(r.s.rules, stored.RuleID)
		}
	})
	return nil
}

type DocumentRepository struct{ s *Store }

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.LatestID == "" {
		doc.LatestID = doc.ID
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = r.s.now()
	}
	if _, exists := r.s.documents[doc.ID]; exists {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("document %s already exists", doc.ID),
			ResourceType: "document",
			ResourceID:   doc.ID,
		}
	}
	if doc.ParentID != nil {
		if _, ok := r.s.documents[*doc.ParentID]; !ok {
			return fmt.Errorf("parent document %s: %w", *doc.ParentID, domain.ErrNotFound)
		}
		r.s.children[*doc.ParentID] = append(r.s.children[*doc.ParentID], doc.ID)
	}

	r.s.documents[doc.ID] = *doc
	id, parentID := doc.ID, doc.ParentID
	record(ctx, func() {
		delete(r.s.documents, id)
		if parentID != nil {
			r.s.children[*parentID] = without(r.s.children[*parentID], id)
		}
	})
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	doc, ok := r.s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return &doc, nil
}

// ListGraph walks breadth-first from rootID; callers rebuild nesting from ParentID.
func (r *DocumentRepository) ListGraph(_ context.Context, rootID string) ([]models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	root, ok := r.s.documents[rootID]
	if !ok {
		return []models.Document{}, nil
	}

	out := []models.Document{root}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, childID := range r.s.children[id] {
			out = append(out, r.s.documents[childID])
			queue = append(queue, childID)
		}
	}
	return out, nil
}

func (r *DocumentRepository) SetLatest(ctx context.Context, rootID, latestID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	previous := make(map[string]string)
	record(ctx, func() {
		for id, latest := range previous {
			if doc, ok := r.s.documents[id]; ok {
				doc.LatestID = latest
				r.s.documents[id] = doc
			}
		}
	})

	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		doc, ok := r.s.documents[id]
		if !ok {
			continue
		}
		previous[id] = doc.LatestID
		doc.LatestID = latestID
		r.s.documents[id] = doc
		queue = append(queue, r.s.children[id]...)
	}
	return nil
}

type HistoryRepository struct{ s *Store }

func (r *HistoryRepository) Append(ctx context.Context, rec *models.PromptRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[rec.DocID]; !ok {
		return fmt.Errorf("append prompt history: document %s: %w", rec.DocID, domain.ErrNotFound)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.s.now()
	}
	r.s.history = append(r.s.history, *rec)
	id := rec.ID
	record(ctx, func() {
		for i := len(r.s.history) - 1; i >= 0; i-- {
			if r.s.history[i].ID == id {
				r.s.history = append(r.s.history[:i], r.s.history[i+1:]...)
				return
			}
		}
	})
	return nil
}

// List pages newest first
func (r *HistoryRepository) List(_ context.Context, offset, limit int) ([]models.PromptRecord, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	total := len(r.s.history)
	if offset >= total {
		return []models.PromptRecord{}, total, nil
	}
	out := make([]models.PromptRecord, 0, min(limit, total-offset))
	for i := total - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.history[i])
	}
	return out, total, nil
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
