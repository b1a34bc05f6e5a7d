package catalog

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"folio/models"
)

const defaultCacheSize = 64

// Cache memoizes views of a fixed project collection by normalized tag.
// Views handed out share backing arrays and must be treated as read-only.
type Cache struct {
	engine   *Engine
	projects []models.Project
	views    *lru.Cache[string, View]
}

// NewCache builds a Cache over a private copy of projects. A non-positive
// size selects the default capacity.
func NewCache(engine *Engine, projects []models.Project, size int) *Cache {
	if engine == nil {
		engine = Default()
	}
	if size <= 0 {
		size = defaultCacheSize
	}
	// lru.New only errors on a non-positive size, guarded above.
	views, _ := lru.New[string, View](size)
	return &Cache{
		engine:   engine,
		projects: append([]models.Project(nil), projects...),
		views:    views,
	}
}

// View returns the catalog view for tag, computing it on first use.
func (c *Cache) View(tag string) View {
	key := normalize(tag)
	if isAll(key) {
		key = "all"
	}
	if view, ok := c.views.Get(key); ok {
		view.Selected = strings.TrimSpace(tag)
		return view
	}
	view := c.engine.BuildView(c.projects, tag)
	c.views.Add(key, view)
	return view
}

// Engine exposes the rules the cache was built with.
func (c *Cache) Engine() *Engine {
	return c.engine
}

// Len reports how many views are cached.
func (c *Cache) Len() int {
	return c.views.Len()
}
