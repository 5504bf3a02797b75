package products

import "time"

// Product is an insurance product clients can enroll in.
type Product struct {
	Code           string
	Name           string
	Description    string
	MonthlyPremium string
	Currency       string
}

// Enrollment attaches a product to a registered client.
type Enrollment struct {
	ID          string
	ClientID    string
	ProductCode string
	EnrolledBy  string
	CreatedAt   time.Time
}
