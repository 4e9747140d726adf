package taxonomy

import (
	"time"

	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/data/repos"
	"github.com/nukigor/ai-voxarena/internal/platform/cache"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Terms        repos.TaxonomyRepo
	Categories   repos.TaxonomyCategoryRepo
	PersonaLinks repos.PersonaTaxonomyRepo

	// Optional: term pages are cached here when set.
	Cache    cache.Cache
	CacheTTL time.Duration
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Cache == nil {
		deps.Cache = cache.Nop()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = 5 * time.Minute
	}
	return Usecases{deps: deps}
}

// Page is one page of a paginated listing. Page is 1-indexed.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams parses raw query values. Anything unparseable falls back to the default.
func pageParams(rawPage, rawSize string) (page, size int) {
	page, size = 1, defaultPageSize
	if n, ok := parseInt(rawPage); ok {
		page = n
	}
	if n, ok := parseInt(rawSize); ok {
		size = n
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
