package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// Line is one cart entry. Identity is the product id; Quantity is always >= 1.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type State struct {
	Lines    []Line          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Loading  bool            `json:"loading"`
	Error    string          `json:"error,omitempty"`

	// RemoteCartID is the upstream cart last synced by the remote mirror.
	RemoteCartID int `json:"remoteCartId,omitempty"`

	pendingRemote uint64
}

func Initial() State {
	return State{
		Lines:    []Line{},
		Subtotal: decimal.Zero,
	}
}

// Subtotal sums price x quantity over lines.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// Find returns the index of the line for productID, or -1.
func Find(lines []Line, productID int) int {
	for i, l := range lines {
		if l.ID == productID {
			return i
		}
	}
	return -1
}

// RemoteLine is the upstream cart payload entry.
type RemoteLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type RemoteCart struct {
	ID       int          `json:"id"`
	UserID   int          `json:"userId"`
	Products []RemoteLine `json:"products"`
}
