package domain

// Action is the closed set of catalog transitions.
type Action interface {
	ActionType() string
	catalogAction()
}

// FetchStarted marks request RequestID as the newest on Channel.
type FetchStarted struct {
	Channel   Channel
	RequestID uint64
}

type ListFetched struct {
	RequestID uint64
	Items     []Product
	Source    Source
}

type ProductFetched struct {
	RequestID uint64
	Product   Product
}

type CategoriesFetched struct {
	RequestID  uint64
	Categories []string
}

type FetchFailed struct {
	Channel   Channel
	RequestID uint64
	Message   string
}

type SelectedProductCleared struct{}

type ErrorCleared struct{}

func (a FetchStarted) ActionType() string         { return "catalog/" + a.Channel.String() + "/pending" }
func (ListFetched) ActionType() string            { return "catalog/list/fulfilled" }
func (ProductFetched) ActionType() string         { return "catalog/detail/fulfilled" }
func (CategoriesFetched) ActionType() string      { return "catalog/categories/fulfilled" }
func (a FetchFailed) ActionType() string          { return "catalog/" + a.Channel.String() + "/rejected" }
func (SelectedProductCleared) ActionType() string { return "catalog/clearSelectedProduct" }
func (ErrorCleared) ActionType() string           { return "catalog/clearError" }

func (FetchStarted) catalogAction()           {}
func (ListFetched) catalogAction()            {}
func (ProductFetched) catalogAction()         {}
func (CategoriesFetched) catalogAction()      {}
func (FetchFailed) catalogAction()            {}
func (SelectedProductCleared) catalogAction() {}
func (ErrorCleared) catalogAction()           {}
