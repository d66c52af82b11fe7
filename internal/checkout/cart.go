package checkout

import (
	"time"

	"github.com/google/uuid"
)

// Cart is an in-memory purchase in progress. Nothing is reserved while the
// cart is open; stock is only checked and taken when the cart completes.
// PurchaseDate is fixed when the cart opens and is the date discounts resolve
// against.
type Cart struct {
	StoreID      uuid.UUID
	MemberID     uuid.UUID
	CashierID    uuid.UUID
	PurchaseDate time.Time

	units []uuid.UUID
}

// AddUnit puts one unit of the batch into the cart. Buying several units of
// the same batch means calling AddUnit once per unit.
func (c *Cart) AddUnit(merchandiseID uuid.UUID) {
	c.units = append(c.units, merchandiseID)
}

// RemoveUnit takes the most recently added unit of the batch back out.
// Reports whether anything was removed.
func (c *Cart) RemoveUnit(merchandiseID uuid.UUID) bool {
	for i := len(c.units) - 1; i >= 0; i-- {
		if c.units[i] == merchandiseID {
			c.units = append(c.units[:i], c.units[i+1:]...)
			return true
		}
	}
	return false
}

// Units returns the cart's units in the order they were added.
func (c *Cart) Units() []uuid.UUID {
	out := make([]uuid.UUID, len(c.units))
	copy(out, c.units)
	return out
}

// Size returns the number of units in the cart.
func (c *Cart) Size() int {
	return len(c.units)
}

// Empty reports whether the cart holds no units.
func (c *Cart) Empty() bool {
	return len(c.units) == 0
}
