package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/utils"
)

type EntityType string

const (
	EntityRestaurant EntityType = "restaurant"
	EntityDish       EntityType = "dish"
	EntityProduct    EntityType = "product"
)

var (
	ErrInvalidQuery      = errors.New("search query must not be empty")
	ErrUnsupportedFilter = errors.New("search filter must be restaurant, dish or product")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	fetchAttempts = 3
	fetchBackoff  = 100 * time.Millisecond
)

// Source provides the catalog scans the engine ranks against. Any store that
// can hand back plain records works; scoring never depends on a query
// language.
type Source interface {
	AllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	AllDishes(ctx context.Context) ([]models.Dish, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
}

// Result is one ranked hit. It is ephemeral: produced per query, never
// persisted. The formatted fields are display conveniences layered on top of
// the ranking contract.
type Result struct {
	Type            EntityType `json:"type"`
	ID              uint       `json:"id"`
	Slug            string     `json:"slug"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Score           int        `json:"score"`
	Price           float64    `json:"price,omitempty"`
	FormattedPrice  string     `json:"formatted_price,omitempty"`
	CuisineType     string     `json:"cuisine_type,omitempty"`
	Category        string     `json:"category,omitempty"`
	IsSignatureDish bool       `json:"is_signature_dish,omitempty"`
	DeliveryInfo    string     `json:"delivery_info,omitempty"`
	AllergenInfo    string     `json:"allergen_info,omitempty"`
	ImageUrl        string     `json:"image_url,omitempty"`
}

// Page is one page of ranked results plus pagination totals.
type Page struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Pages   int      `json:"pages"`
}

type Engine struct {
	source Source
	cache  *Cache
}

func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// WithCache attaches an optional result cache. Search results do not have to
// be strictly fresh, so brief caching is safe.
func (e *Engine) WithCache(cache *Cache) *Engine {
	e.cache = cache
	return e
}

// Search ranks the requested collection against a free-text query.
//
// Candidates that match no field at all are dropped; the rest are ordered by
// score descending. Ties keep the scan order of the source (primary key
// ascending for the gorm catalog), which makes rankings deterministic for a
// fixed corpus.
func (e *Engine) Search(ctx context.Context, query string, filter EntityType, page, limit int) (*Page, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}
	switch filter {
	case EntityRestaurant, EntityDish, EntityProduct:
	default:
		return nil, ErrUnsupportedFilter
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, filter, query, page, limit); ok {
			return cached, nil
		}
	}

	tokens := tokenize(query)

	var ranked []Result
	err := e.fetchWithRetry(ctx, func() error {
		var fetchErr error
		ranked, fetchErr = e.rank(ctx, tokens, filter)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	total := len(ranked)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	result := &Page{
		Results: ranked[start:end],
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
	}

	if e.cache != nil {
		e.cache.Set(ctx, filter, query, page, limit, result)
	}
	return result, nil
}

// fetchWithRetry retries catalog scans a bounded number of times with
// backoff. Scans are idempotent reads, so automatic retry is safe here and
// nowhere else.
func (e *Engine) fetchWithRetry(ctx context.Context, fetch func() error) error {
	var err error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(fetchBackoff * time.Duration(attempt)):
			}
		}
		if err = fetch(); err == nil {
			return nil
		}
	}
	return err
}

func (e *Engine) rank(ctx context.Context, tokens []token, filter EntityType) ([]Result, error) {
	var ranked []Result

	switch filter {
	case EntityRestaurant:
		restaurants, err := e.source.AllRestaurants(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range restaurants {
			if s := score(tokens, restaurantFields(r)); s > 0 {
				ranked = append(ranked, restaurantResult(r, s))
			}
		}
	case EntityDish:
		dishes, err := e.source.AllDishes(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range dishes {
			if s := score(tokens, dishFields(d)); s > 0 {
				ranked = append(ranked, dishResult(d, s))
			}
		}
	case EntityProduct:
		products, err := e.source.AllProducts(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			if s := score(tokens, productFields(p)); s > 0 {
				ranked = append(ranked, productResult(p, s))
			}
		}
	}
	return ranked, nil
}

func restaurantFields(r models.Restaurant) fieldSet {
	return fieldSet{
		name:        r.Name,
		description: r.Description,
		category:    r.CuisineType,
	}
}

func dishFields(d models.Dish) fieldSet {
	var elements []string
	elements = append(elements, d.GetIngredients()...)
	elements = append(elements, d.GetAllergens()...)
	elements = append(elements, d.GetMenus()...)
	elements = append(elements, d.GetRestaurants()...)

	var numbers []float64
	if d.ChenPiAge > 0 {
		numbers = append(numbers, float64(d.ChenPiAge))
	}

	return fieldSet{
		name:        d.Name,
		description: d.Description,
		elements:    elements,
		numbers:     numbers,
	}
}

func productFields(p models.Product) fieldSet {
	return fieldSet{
		name:        p.Name,
		description: p.Description,
		category:    p.Category,
		elements:    p.GetIngredients(),
	}
}

func restaurantResult(r models.Restaurant, score int) Result {
	return Result{
		Type:        EntityRestaurant,
		ID:          r.ID,
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Score:       score,
		CuisineType: r.CuisineType,
		ImageUrl:    r.ImageUrl,
	}
}

func dishResult(d models.Dish, score int) Result {
	return Result{
		Type:            EntityDish,
		ID:              d.ID,
		Slug:            d.Slug,
		Name:            d.Name,
		Description:     d.Description,
		Score:           score,
		Price:           d.Price,
		FormattedPrice:  utils.FormatPrice(d.Price),
		IsSignatureDish: d.IsSignatureDish,
		AllergenInfo:    allergenSummary(d.GetAllergens()),
		ImageUrl:        d.ImageUrl,
	}
}

func productResult(p models.Product, score int) Result {
	info := "in-store only"
	if p.AvailableForDelivery {
		info = "available for delivery"
	}
	return Result{
		Type:           EntityProduct,
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		Score:          score,
		Price:          p.Price,
		FormattedPrice: utils.FormatPrice(p.Price),
		Category:       p.Category,
		DeliveryInfo:   info,
		ImageUrl:       p.ImageUrl,
	}
}

func allergenSummary(allergens []string) string {
	if len(allergens) == 0 {
		return "no listed allergens"
	}
	return "contains: " + strings.Join(allergens, ", ")
}
