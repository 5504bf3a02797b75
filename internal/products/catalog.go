package products

// Catalog returns the demo product lineup. The list is static so the
// platform can be exercised without a product administration backend.
func Catalog() []Product {
	return []Product{
		{
			Code:           "FUNERAL_STD",
			Name:           "Standard Funeral Cover",
			Description:    "Funeral expense cover for the principal member and immediate family.",
			MonthlyPremium: "50.00",
			Currency:       "ZMW",
		},
		{
			Code:           "LIFE_TERM",
			Name:           "Term Life Assurance",
			Description:    "Fixed-term life assurance with a lump-sum benefit.",
			MonthlyPremium: "120.00",
			Currency:       "ZMW",
		},
		{
			Code:           "HOSPITAL_CASH",
			Name:           "Hospital Cash Plan",
			Description:    "Daily cash benefit for each night spent in hospital.",
			MonthlyPremium: "35.00",
			Currency:       "ZMW",
		},
		{
			Code:           "MOTOR_3RD",
			Name:           "Motor Third Party",
			Description:    "Statutory third-party motor liability cover.",
			MonthlyPremium: "85.00",
			Currency:       "ZMW",
		},
	}
}

// FindProduct looks up a catalog product by code.
func FindProduct(code string) (Product, bool) {
	for _, p := range Catalog() {
		if p.Code == code {
			return p, true
		}
	}
	return Product{}, false
}
