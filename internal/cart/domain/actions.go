package domain

import catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"

// Action is the closed set of cart transitions.
type Action interface {
	ActionType() string
	cartAction()
}

type ItemAdded struct {
	Product catalog.Product
}

type ItemRemoved struct {
	ProductID int
}

type QuantityIncremented struct {
	ProductID int
}

type QuantityDecremented struct {
	ProductID int
}

type Cleared struct{}

// ItemsOrdered takes ordered quantities out of the cart. Lines that reach zero are
// dropped; anything added after the order was quoted stays.
type ItemsOrdered struct {
	Quantities map[int]int
}

type RemoteStarted struct {
	RequestID uint64
}

// RemoteSynced replaces the local lines with the server's cart.
type RemoteSynced struct {
	RequestID uint64
	CartID    int
	Lines     []Line
}

type RemoteFailed struct {
	RequestID uint64
	Message   string
}

func (ItemAdded) ActionType() string           { return "cart/addItem" }
func (ItemRemoved) ActionType() string         { return "cart/removeItem" }
func (QuantityIncremented) ActionType() string { return "cart/incrementQuantity" }
func (QuantityDecremented) ActionType() string { return "cart/decrementQuantity" }
func (Cleared) ActionType() string             { return "cart/clear" }
func (ItemsOrdered) ActionType() string        { return "cart/itemsOrdered" }
func (RemoteStarted) ActionType() string       { return "cart/remote/pending" }
func (RemoteSynced) ActionType() string        { return "cart/remote/fulfilled" }
func (RemoteFailed) ActionType() string        { return "cart/remote/rejected" }

func (ItemAdded) cartAction()           {}
func (ItemRemoved) cartAction()         {}
func (QuantityIncremented) cartAction() {}
func (QuantityDecremented) cartAction() {}
func (Cleared) cartAction()             {}
func (ItemsOrdered) cartAction()        {}
func (RemoteStarted) cartAction()       {}
func (RemoteSynced) cartAction()        {}
func (RemoteFailed) cartAction()        {}
