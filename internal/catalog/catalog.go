package catalog

import (
	"context"
	"sync"

	appErr "ojplay/pkg/errors"
	"ojplay/pkg/utils/logger"

	"go.uber.org/zap"
)

// DefaultProblemID is selected automatically after a load when present.
const DefaultProblemID int64 = 1

// Source lists the problems offered by the catalog service.
type Source interface {
	ListProblems(ctx context.Context) ([]Problem, error)
}

// Catalog holds the fetched problems and the current selection.
// It never mutates records; a reload replaces the list wholesale.
type Catalog struct {
	mu       sync.RWMutex
	problems []Problem
	selected *Problem
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Load fetches the problem list and replaces the cached one.
// On failure the cached list is left untouched.
func (c *Catalog) Load(ctx context.Context, src Source) ([]Problem, error) {
	if src == nil {
		return nil, appErr.New(appErr.CatalogLoadFailed).WithMessage("catalog source is not configured")
	}
	fetched, err := src.ListProblems(ctx)
	if err != nil {
		if code := appErr.GetCode(err); code == appErr.CatalogMalformed || code == appErr.CatalogLoadFailed {
			return nil, err
		}
		return nil, appErr.Wrap(err, appErr.CatalogLoadFailed)
	}

	live := make([]Problem, 0, len(fetched))
	for _, p := range fetched {
		if p.Deleted() {
			continue
		}
		if dups := duplicateLanguages(p); len(dups) > 0 {
			logger.Warn(ctx, "problem has several snippets per language, first one wins",
				zap.Int64("problem_id", p.ID), zap.Strings("languages", dups))
		}
		live = append(live, p)
	}

	c.mu.Lock()
	c.problems = live
	c.mu.Unlock()
	logger.Info(ctx, "problem catalog loaded", zap.Int("count", len(live)), zap.Int("skipped", len(fetched)-len(live)))
	return c.Problems(), nil
}

// Problems returns a copy of the cached list.
func (c *Catalog) Problems() []Problem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Problem, len(c.problems))
	copy(out, c.problems)
	return out
}

// Find looks a problem up by id.
func (c *Catalog) Find(id int64) (*Problem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.problems {
		if c.problems[i].ID == id {
			p := c.problems[i]
			return &p, true
		}
	}
	return nil, false
}

// Select replaces the current selection.
func (c *Catalog) Select(p *Problem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == nil {
		c.selected = nil
		return
	}
	cp := *p
	c.selected = &cp
}

// Selected returns the current selection, or nil.
func (c *Catalog) Selected() *Problem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		return nil
	}
	cp := *c.selected
	return &cp
}
