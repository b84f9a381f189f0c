package catalog

type CreateCategoryRequest struct {
	Name string  `json:"name" binding:"required"`
	Rate float64 `json:"rate" binding:"required"`
}

type CreateServiceRequest struct {
	Name    string `json:"name" binding:"required"`
	Price   int64  `json:"price" binding:"required"`
	AvgTime int    `json:"avg_time"`
}

type CreateDoctorRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
}

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	ListPrice    float64 `json:"list_price" binding:"required"`
	QtyAvailable int     `json:"qty_available"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}
