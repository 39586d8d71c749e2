package sqlite

import (
	"database/sql"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.Inventory = (*inventoryTable)(nil)

// inventoryTable stores products. Prices are kept as decimal strings so no
// precision is lost in the round trip.
type inventoryTable struct {
	backend *Backend
}

const selectProducts = "SELECT seq, name, price, stock FROM products ORDER BY seq"

func scanProduct(rows *sql.Rows) (int64, types.Product, error) {
	var (
		seq   int64
		p     types.Product
		price string
	)
	if err := rows.Scan(&seq, &p.Name, &price, &p.StockQuantity); err != nil {
		return 0, types.Product{}, fmt.Errorf("scanning product: %w", err)
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, types.Product{}, fmt.Errorf("parsing price %q: %w", price, err)
	}
	p.Price = d
	return seq, p, nil
}

func (it *inventoryTable) lock() (*sql.DB, func(), error) {
	return it.backend.use(func() bool { return it.backend.inventory == it })
}

func findProduct(q querier, name string) (int64, types.Product, error) {
	return queryFirst(q, scanProduct, func(p types.Product) bool { return p.HasName(name) }, selectProducts)
}

func (it *inventoryTable) AddProduct(p types.Product) error {
	db, unlock, err := it.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := p.Validate(); err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO products (name, price, stock) VALUES (?, ?, ?)",
		p.Name, p.Price.String(), p.StockQuantity,
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (it *inventoryTable) FindProduct(name string) (types.Product, error) {
	db, unlock, err := it.lock()
	if err != nil {
		return types.Product{}, err
	}
	defer unlock()

	_, p, err := findProduct(db, name)
	return p, err
}

// update applies fn to the first product matching name inside a transaction
// and writes the result back. An error from fn aborts the update.
func (it *inventoryTable) update(name string, fn func(*types.Product) error) (types.Product, error) {
	db, unlock, err := it.lock()
	if err != nil {
		return types.Product{}, err
	}
	defer unlock()

	tx, err := db.Begin()
	if err != nil {
		return types.Product{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	seq, p, err := findProduct(tx, name)
	if err != nil {
		return types.Product{}, err
	}
	if err := fn(&p); err != nil {
		return types.Product{}, err
	}
	if _, err := tx.Exec(
		"UPDATE products SET price = ?, stock = ? WHERE seq = ?",
		p.Price.String(), p.StockQuantity, seq,
	); err != nil {
		return types.Product{}, fmt.Errorf("updating product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return types.Product{}, fmt.Errorf("committing product: %w", err)
	}
	return p, nil
}

func (it *inventoryTable) UpdateStock(name string, delta int) (types.Product, error) {
	return it.update(name, func(p *types.Product) error { return p.AdjustStock(delta) })
}

func (it *inventoryTable) SetPrice(name string, price decimal.Decimal) (types.Product, error) {
	return it.update(name, func(p *types.Product) error {
		p.Price = price
		return nil
	})
}

func (it *inventoryTable) RemoveProduct(name string) error {
	db, unlock, err := it.lock()
	if err != nil {
		return err
	}
	defer unlock()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	seq, _, err := findProduct(tx, name)
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM products WHERE seq = ?", seq); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing product: %w", err)
	}
	return nil
}

func (it *inventoryTable) Products() iter.Seq2[types.Product, error] {
	return snapshot(func() ([]types.Product, error) {
		db, unlock, err := it.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
		_, all, err := queryAll(db, scanProduct, selectProducts)
		return all, err
	})
}

func (it *inventoryTable) Len() (int, error) {
	db, unlock, err := it.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return count(db, "products")
}
