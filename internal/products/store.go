package products

import (
	"context"
	"errors"
)

// ErrDuplicate signals the client already holds the product.
var ErrDuplicate = errors.New("products: client already enrolled in product")

// EnrollmentStore holds product enrollments.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment Enrollment) error
	ListByClient(ctx context.Context, clientID string) ([]Enrollment, error)
}
