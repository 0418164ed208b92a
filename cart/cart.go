// Package cart implements the shopping cart: an ordered list of product
// snapshot lines keyed by product code, persisted through the kv store on
// every mutation.
package cart

import (
	"encoding/json"
	"log"

	"primos.GO/catalog"
	"primos.GO/core/kv"
)

// StorageKey is the base kv key for persisted carts.
const StorageKey = "primos_cart"

// Line is one cart entry: a product snapshot copied at add-time plus a
// quantity. The snapshot keeps its original price even when the catalog
// price changes later.
type Line struct {
	catalog.Product `mapstructure:",squash"`
	Quantity        int `json:"quantity" mapstructure:"quantity"`
}

// Subtotal is the line's contribution to the cart total. An unparseable
// stored price contributes 0 (warned, never fatal).
func (l Line) Subtotal() float64 {
	return l.unitPrice() * float64(l.Quantity)
}

func (l Line) unitPrice() float64 {
	if l.PriceRaw != 0 {
		return l.PriceRaw
	}
	if l.Price == "" {
		return 0
	}
	v, err := catalog.CleanPrice(l.Price)
	if err != nil {
		log.Printf("[warn] cart: invalid price for %s: %q", l.Code, l.Price)
		return 0
	}
	return v
}

// Cart is the mutable cart state bound to one storage key.
type Cart struct {
	items []Line
	store kv.Store
	key   string
}

// New returns an empty cart persisted under key (StorageKey when empty).
func New(store kv.Store, key string) *Cart {
	if key == "" {
		key = StorageKey
	}
	return &Cart{store: store, key: key}
}

// Load returns the cart persisted under key, tolerating legacy line
// shapes. A corrupt or unreadable payload yields an empty cart.
func Load(store kv.Store, key string) *Cart {
	c := New(store, key)
	raw, ok, err := store.Get(c.key)
	if err != nil {
		log.Printf("[warn] cart load: %v", err)
		return c
	}
	if !ok {
		return c
	}
	c.items = decodeLines(raw)
	return c
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.items))
	copy(out, c.items)
	return out
}

// Add inserts a product snapshot or increments an existing line.
func (c *Cart) Add(p catalog.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].Code == p.Code {
			c.items[i].Quantity += quantity
			c.persist()
			return
		}
	}
	c.items = append(c.items, Line{Product: p, Quantity: quantity})
	c.persist()
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(code string) {
	kept := c.items[:0]
	for _, l := range c.items {
		if l.Code != code {
			kept = append(kept, l)
		}
	}
	c.items = kept
	c.persist()
}

// SetQuantity sets a line to exactly n; n <= 0 removes the line.
func (c *Cart) SetQuantity(code string, n int) {
	if n <= 0 {
		c.Remove(code)
		return
	}
	for i := range c.items {
		if c.items[i].Code == code {
			c.items[i].Quantity = n
			c.persist()
			return
		}
	}
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.items = nil
	c.persist()
}

// Total sums unit price × quantity across all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.items {
		total += l.Subtotal()
	}
	return total
}

// ItemCount sums quantities, for the badge display.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.items {
		n += l.Quantity
	}
	return n
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// persist writes the full line list on every mutation. Storage failures
// degrade to a non-persisted cart without aborting the caller.
func (c *Cart) persist() {
	raw, err := json.Marshal(c.items)
	if err != nil {
		log.Printf("[warn] cart encode: %v", err)
		return
	}
	if err := c.store.Set(c.key, string(raw)); err != nil {
		log.Printf("[warn] cart persist: %v", err)
	}
}
