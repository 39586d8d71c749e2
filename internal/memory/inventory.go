package memory

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.Inventory = (*inventoryStore)(nil)

// inventoryStore keeps products in insertion order.
type inventoryStore struct {
	backend  *Backend
	products List[types.Product]
}

// check returns ErrDetached when the store no longer belongs to an attached
// backend.
func (s *inventoryStore) check() error {
	if s.backend.inventory != s {
		return types.ErrDetached
	}
	return nil
}

func (s *inventoryStore) AddProduct(p types.Product) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.products.Append(p)
	return nil
}

func (s *inventoryStore) find(name string) (int, error) {
	if err := s.check(); err != nil {
		return -1, err
	}
	i := s.products.Index(func(p types.Product) bool { return p.HasName(name) })
	if i < 0 {
		return -1, types.ErrNotFound
	}
	return i, nil
}

func (s *inventoryStore) FindProduct(name string) (types.Product, error) {
	i, err := s.find(name)
	if err != nil {
		return types.Product{}, err
	}
	return *s.products.At(i), nil
}

func (s *inventoryStore) UpdateStock(name string, delta int) (types.Product, error) {
	i, err := s.find(name)
	if err != nil {
		return types.Product{}, err
	}
	p := s.products.At(i)
	if err := p.AdjustStock(delta); err != nil {
		return types.Product{}, err
	}
	return *p, nil
}

func (s *inventoryStore) SetPrice(name string, price decimal.Decimal) (types.Product, error) {
	i, err := s.find(name)
	if err != nil {
		return types.Product{}, err
	}
	p := s.products.At(i)
	p.Price = price
	return *p, nil
}

func (s *inventoryStore) RemoveProduct(name string) error {
	i, err := s.find(name)
	if err != nil {
		return err
	}
	s.products.RemoveAt(i)
	return nil
}

func (s *inventoryStore) Products() iter.Seq2[types.Product, error] {
	return func(yield func(types.Product, error) bool) {
		if err := s.check(); err != nil {
			yield(types.Product{}, err)
			return
		}
		for p := range s.products.All(nil) {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func (s *inventoryStore) Len() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.products.Len(), nil
}
