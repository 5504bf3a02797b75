package clients

import "time"

// Client is a person who completed registration after identity verification.
type Client struct {
	ID           string
	IDNumber     string
	IDType       string
	FullName     string
	DateOfBirth  string
	Gender       string
	MobileNumber string
	Email        string
	Province     string
	District     string
	PostalCode   string
	SourceSystem string
	RegisteredBy string
	CreatedAt    time.Time
}
