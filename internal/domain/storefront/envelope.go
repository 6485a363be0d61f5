package storefront

// Status is the outcome marker carried by every commerce API response
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Envelope wraps every payload returned by the commerce API
type Envelope[T any] struct {
	Status    Status `json:"status"`
	Data      T      `json:"data"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// OK reports whether the envelope signals success
func (e Envelope[T]) OK() bool {
	return e.Status == StatusSuccess
}

// OrderMarker is the opaque payload returned by order creation
type OrderMarker struct{}
