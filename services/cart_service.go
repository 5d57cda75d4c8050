package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/chenpihouse/restaurant-app/models"
	"github.com/chenpihouse/restaurant-app/repository"
)

// saveAttempts bounds the optimistic retry loop on a version conflict.
const saveAttempts = 3

// CartService owns every mutation of a user's cart. Each operation re-reads
// the cart, applies the change, restores the total-price invariant and saves
// against the read version, retrying on conflict.
type CartService struct {
	carts   repository.CartRepository
	catalog repository.CatalogStore
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogStore) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem resolves the product by numeric id or slug and either increments an
// existing line or appends a new one snapshotting the current catalog price.
// An existing line keeps its priceAtAdd; increments never refresh it.
func (s *CartService) AddItem(ctx context.Context, userID uint, productRef string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.resolveProduct(ctx, productRef)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		if item := cart.FindItem(product.ID); item != nil {
			item.Quantity += quantity
			return nil
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:  product.ID,
			Product:    *product,
			Quantity:   quantity,
			PriceAtAdd: product.Price,
		})
		return nil
	})
}

// UpdateQuantity sets the quantity of an existing line. Zero is rejected:
// dropping a line goes through RemoveItem, never through a zero update.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		item := cart.FindItem(productID)
		if item == nil {
			return ErrItemNotInCart
		}
		item.Quantity = quantity
		return nil
	})
}

// RemoveItem drops the line if present. Removing an absent product is a
// no-op, so the call is idempotent.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) (*models.Cart, error) {
	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
		return nil
	})
}

// ClearCart empties the cart. The cart row itself persists.
func (s *CartService) ClearCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		cart.Items = []models.CartItem{}
		return nil
	})
}

// CheckDeliveryAvailability re-resolves every line item against the catalog
// and returns the names of items that are not currently deliverable. This is
// a live check; eligibility at add-time does not count.
func (s *CartService) CheckDeliveryAvailability(ctx context.Context, userID uint) ([]string, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	ineligible := []string{}
	for _, item := range cart.Items {
		product, err := s.catalog.FindProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Product withdrawn from the catalog since it was added.
				ineligible = append(ineligible, item.Product.Name)
				continue
			}
			return nil, err
		}
		if !product.AvailableForDelivery {
			ineligible = append(ineligible, product.Name)
		}
	}
	return ineligible, nil
}

// mutate runs one read-modify-write cycle per attempt, so a conflicting
// writer's changes are picked up before the change is re-applied.
func (s *CartService) mutate(ctx context.Context, userID uint, apply func(*models.Cart) error) (*models.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		cart, err := s.carts.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := apply(cart); err != nil {
			return nil, err
		}
		cart.RecomputeTotal()

		lastErr = s.carts.Save(ctx, cart)
		if lastErr == nil {
			return cart, nil
		}
		if !errors.Is(lastErr, repository.ErrConflict) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *CartService) resolveProduct(ctx context.Context, ref string) (*models.Product, error) {
	var product *models.Product
	var err error

	if id, parseErr := strconv.ParseUint(ref, 10, 32); parseErr == nil {
		product, err = s.catalog.FindProductByID(ctx, uint(id))
	} else {
		product, err = s.catalog.FindProductBySlug(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
