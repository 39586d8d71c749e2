package menu

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Inventory drives the product menu over an inventory store.
type Inventory struct {
	store types.Inventory
	p     *Prompter
	log   *zap.Logger
}

// NewInventory returns a controller for store.
func NewInventory(store types.Inventory, p *Prompter, log *zap.Logger) *Inventory {
	return &Inventory{store: store, p: p, log: log}
}

// Run loops over the inventory menu until exit or end of input.
func (c *Inventory) Run(ctx context.Context) error {
	m := &Menu{
		Title:  "Inventory Management System",
		Prompt: "Enter choice: ",
		Options: []Option{
			{Label: "Add Product", Run: c.add},
			{Label: "Update Stock", Run: c.updateStock},
			{Label: "View Products", Run: c.view},
			{Label: "Remove Product", Run: c.remove},
			{Label: "Update Price", Run: c.updatePrice},
		},
		Exit: "Exit",
	}
	return m.Run(ctx, c.p)
}

func (c *Inventory) add(ctx context.Context) error {
	name, err := c.p.Line("Enter product name: ")
	if err != nil {
		return err
	}
	price, err := c.p.DecimalRetry("Enter product price: ")
	if err != nil {
		return err
	}
	stock, err := c.p.IntRetry("Enter stock quantity: ")
	if err != nil {
		return err
	}

	err = c.store.AddProduct(types.NewProduct(name, price, stock))
	if errors.Is(err, types.ErrInvalidName) {
		c.log.Debug("product rejected", zap.Error(err))
		c.p.Println("Product name cannot be empty!")
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("product added",
		zap.String("name", name),
		zap.Stringer("price", price),
		zap.Int("stock", stock),
	)
	c.p.Println("Product added successfully!")
	c.p.Println()
	return nil
}

// lookup reads a product name and reports whether it exists, printing the
// not-found message when it does not.
func (c *Inventory) lookup(label string) (string, bool, error) {
	name, err := c.p.Line(label)
	if err != nil {
		return "", false, err
	}
	_, err = c.store.FindProduct(name)
	if errors.Is(err, types.ErrNotFound) {
		c.log.Debug("product not found", zap.String("name", name))
		c.p.Println("Product not found!")
		c.p.Println()
		return name, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (c *Inventory) updateStock(ctx context.Context) error {
	name, ok, err := c.lookup("Enter product name: ")
	if err != nil || !ok {
		return err
	}
	delta, err := c.p.IntRetry("Enter quantity to add or subtract: ")
	if err != nil {
		return err
	}
	p, err := c.store.UpdateStock(name, delta)
	if errors.Is(err, types.ErrStockOverflow) {
		c.log.Debug("stock update rejected", zap.String("name", name), zap.Int("delta", delta), zap.Error(err))
		c.p.Println("Stock quantity out of range! No change made.")
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("stock updated", zap.String("name", p.Name), zap.Int("delta", delta), zap.Int("stock", p.StockQuantity))
	c.p.Println("Stock updated successfully!")
	c.p.Println()
	return nil
}

func (c *Inventory) updatePrice(ctx context.Context) error {
	name, ok, err := c.lookup("Enter product name: ")
	if err != nil || !ok {
		return err
	}
	price, err := c.p.DecimalRetry("Enter new price: ")
	if err != nil {
		return err
	}
	p, err := c.store.SetPrice(name, price)
	if err != nil {
		return err
	}
	c.log.Debug("price updated", zap.String("name", p.Name), zap.Stringer("price", p.Price))
	c.p.Println("Price updated successfully!")
	c.p.Println()
	return nil
}

func (c *Inventory) view(ctx context.Context) error {
	c.p.Println()
	c.p.Println("Current Inventory:")
	for p, err := range c.store.Products() {
		if err != nil {
			return err
		}
		c.p.Printf("Name: %s, Price: %s, Stock: %d\n", p.Name, FormatPrice(p.Price), p.StockQuantity)
	}
	c.p.Println()
	return nil
}

func (c *Inventory) remove(ctx context.Context) error {
	name, err := c.p.Line("Enter product name to remove: ")
	if err != nil {
		return err
	}
	err = c.store.RemoveProduct(name)
	if errors.Is(err, types.ErrNotFound) {
		c.log.Debug("product not found", zap.String("name", name))
		c.p.Println("Product not found!")
		c.p.Println()
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("product removed", zap.String("name", name))
	c.p.Println("Product removed successfully!")
	c.p.Println()
	return nil
}
