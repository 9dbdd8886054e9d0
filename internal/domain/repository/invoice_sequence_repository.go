package repository

// InvoiceSequenceRepository hands out invoice numbers.
type InvoiceSequenceRepository interface {
	// NextNumber claims and returns the next number for the company, prefix
	// and year. The claim must be atomic with respect to concurrent callers
	// (row lock / upsert), and must run inside the invoice creation
	// transaction so an aborted create does not burn numbers observed by a
	// committed one.
	NextNumber(companyID, prefix string, year int) (int64, error)
}
