package repository

import (
	"context"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

	"gorm.io/gorm"
)

// CatalogRepository serves the clinic reference data: pet categories,
// services, doctors, products and the customer records mirrored from the
// host partner registry.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type petCategoryModel struct {
	ID   int64   `gorm:"column:id;primaryKey"`
	Name string  `gorm:"column:name"`
	Rate float64 `gorm:"column:rate"`
}

func (petCategoryModel) TableName() string { return "pet_categories" }

type doctorModel struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	Name      string `gorm:"column:name"`
	Specialty string `gorm:"column:specialty"`
	Phone     string `gorm:"column:phone"`
}

func (doctorModel) TableName() string { return "doctors" }

type serviceModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	Name    string `gorm:"column:name"`
	Price   int64  `gorm:"column:price"`
	AvgTime int    `gorm:"column:avg_time"`
}

func (serviceModel) TableName() string { return "services" }

type productModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	Name         string  `gorm:"column:name"`
	ListPrice    float64 `gorm:"column:list_price"`
	QtyAvailable int     `gorm:"column:qty_available"`
}

func (productModel) TableName() string { return "products" }

type customerModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	Name    string `gorm:"column:name"`
	Phone   string `gorm:"column:phone"`
	Address string `gorm:"column:address"`
	Email   string `gorm:"column:email"`
}

func (customerModel) TableName() string { return "customers" }

func (r *CatalogRepository) CategoryByID(ctx context.Context, id int64) (*domain.PetCategory, error) {
	var m petCategoryModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &domain.PetCategory{ID: m.ID, Name: m.Name, Rate: m.Rate}, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *domain.PetCategory) error {
	m := petCategoryModel{Name: c.Name, Rate: c.Rate}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.PetCategory, error) {
	var rows []petCategoryModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.PetCategory, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.PetCategory{ID: m.ID, Name: m.Name, Rate: m.Rate})
	}
	return out, nil
}

func (r *CatalogRepository) DoctorByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	var m doctorModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &domain.Doctor{ID: m.ID, Name: m.Name, Specialty: m.Specialty, Phone: m.Phone}, nil
}

func (r *CatalogRepository) CreateDoctor(ctx context.Context, d *domain.Doctor) error {
	m := doctorModel{Name: d.Name, Specialty: d.Specialty, Phone: d.Phone}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	d.ID = m.ID
	return nil
}

func (r *CatalogRepository) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	var rows []doctorModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Doctor, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Doctor{ID: m.ID, Name: m.Name, Specialty: m.Specialty, Phone: m.Phone})
	}
	return out, nil
}

func (r *CatalogRepository) ServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &domain.Service{ID: m.ID, Name: m.Name, Price: m.Price, AvgTime: m.AvgTime}, nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *domain.Service) error {
	m := serviceModel{Name: s.Name, Price: s.Price, AvgTime: s.AvgTime}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.ID = m.ID
	return nil
}

func (r *CatalogRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	var rows []serviceModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Service{ID: m.ID, Name: m.Name, Price: m.Price, AvgTime: m.AvgTime})
	}
	return out, nil
}

func (r *CatalogRepository) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &domain.Product{ID: m.ID, Name: m.Name, ListPrice: m.ListPrice, QtyAvailable: m.QtyAvailable}, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	m := productModel{Name: p.Name, ListPrice: p.ListPrice, QtyAvailable: p.QtyAvailable}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Product{ID: m.ID, Name: m.Name, ListPrice: m.ListPrice, QtyAvailable: m.QtyAvailable})
	}
	return out, nil
}

func (r *CatalogRepository) CustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &domain.Customer{ID: m.ID, Name: m.Name, Phone: m.Phone, Address: m.Address, Email: m.Email}, nil
}

func (r *CatalogRepository) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	m := customerModel{Name: c.Name, Phone: c.Phone, Address: c.Address, Email: c.Email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	return nil
}
