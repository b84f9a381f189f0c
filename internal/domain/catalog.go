package domain

// Doctor is reference data only; bookings reference doctors by id.
type Doctor struct {
	ID        int64
	Name      string
	Specialty string
	Phone     string
}

// Service is a billable clinic service with base price and average duration
// in minutes. Actual line values scale these by the pet category rate.
type Service struct {
	ID      int64
	Name    string
	Price   int64
	AvgTime int
}

// Product is a retail item backed by warehouse stock.
type Product struct {
	ID           int64
	Name         string
	ListPrice    float64
	QtyAvailable int
}

// Customer mirrors the host partner record referenced by bookings and pets.
type Customer struct {
	ID      int64
	Name    string
	Phone   string
	Address string
	Email   string
}
