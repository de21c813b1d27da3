package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
)

var (
	// ErrProductNotFound indicates no settings are stored for the requested product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct indicates the provided product settings violate validation rules.
	ErrInvalidProduct = errors.New("product must have an id and a supported calculator type")
)

// Attribute taxonomies read by the calculator.
const (
	AttributeColour = "colour"
	AttributeWeight = "weight"
)

// Product is the stored calculator configuration of a single product.
// Settings holds raw formula values keyed by the calculator.Setting* names;
// Attributes holds taxonomy terms such as "colour" and "weight".
type Product struct {
	ID                  string              `yaml:"id" json:"id"`
	Name                string              `yaml:"name" json:"name"`
	Enabled             bool                `yaml:"enabled" json:"enabled"`
	Type                string              `yaml:"type" json:"type"`
	UseColourAttributes bool                `yaml:"use_colour_attributes" json:"useColourAttributes"`
	UseWeightAttributes bool                `yaml:"use_weight_attributes" json:"useWeightAttributes"`
	Settings            map[string]string   `yaml:"settings" json:"settings,omitempty"`
	Attributes          map[string][]string `yaml:"attributes" json:"attributes,omitempty"`
}

// Storage provides access to per-product calculator settings.
type Storage interface {
	GetProduct(id string) (Product, error)
	ListProducts() ([]Product, error)
	SetProduct(p Product) error
}

// MemoryStorage keeps products in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu       sync.RWMutex
	products map[string]Product
}

// NewMemoryStorage initialises storage with a copy of the default catalog.
func NewMemoryStorage() *MemoryStorage {
	s := &MemoryStorage{products: make(map[string]Product)}
	for _, p := range defaultProducts {
		s.products[p.ID] = cloneProduct(p)
	}
	return s
}

// DefaultProducts returns a copy of the default catalog, ordered by ID.
func DefaultProducts() []Product {
	out := make([]Product, 0, len(defaultProducts))
	for _, p := range defaultProducts {
		out = append(out, cloneProduct(p))
	}
	sortProducts(out)
	return out
}

// GetProduct returns a defensive copy of the product stored under id.
func (s *MemoryStorage) GetProduct(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[strings.TrimSpace(id)]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	return cloneProduct(p), nil
}

// ListProducts returns copies of every stored product ordered by ID.
func (s *MemoryStorage) ListProducts() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, cloneProduct(p))
	}
	sortProducts(out)
	return out, nil
}

// SetProduct validates, normalises, and stores the provided product,
// replacing any previous settings with the same ID.
func (s *MemoryStorage) SetProduct(p Product) error {
	normalized, err := normalizeProduct(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products[normalized.ID] = normalized
	s.mu.Unlock()

	return nil
}

// Replace swaps the whole catalog for products. Nothing is stored if any
// product is invalid.
func (s *MemoryStorage) Replace(products []Product) error {
	next := make(map[string]Product, len(products))
	for _, p := range products {
		normalized, err := normalizeProduct(p)
		if err != nil {
			return err
		}
		next[normalized.ID] = normalized
	}

	s.mu.Lock()
	s.products = next
	s.mu.Unlock()

	return nil
}

func normalizeProduct(p Product) (Product, error) {
	p = cloneProduct(p)
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return Product{}, fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	t, err := calculator.ParseProductType(p.Type)
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %q: %v", ErrInvalidProduct, p.ID, err)
	}
	p.Type = string(t)
	return p, nil
}

func cloneProduct(p Product) Product {
	out := p
	if p.Settings != nil {
		out.Settings = make(map[string]string, len(p.Settings))
		for k, v := range p.Settings {
			out.Settings[k] = v
		}
	}
	if p.Attributes != nil {
		out.Attributes = make(map[string][]string, len(p.Attributes))
		for k, v := range p.Attributes {
			out.Attributes[k] = append([]string(nil), v...)
		}
	}
	return out
}

func sortProducts(products []Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
}
