package catalog

import (
	"context"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

// Store is the reference-data persistence contract.
type Store interface {
	CreateCategory(ctx context.Context, c *domain.PetCategory) error
	ListCategories(ctx context.Context) ([]domain.PetCategory, error)
	CreateService(ctx context.Context, s *domain.Service) error
	ListServices(ctx context.Context) ([]domain.Service, error)
	CreateDoctor(ctx context.Context, d *domain.Doctor) error
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.PetCategory, error) {
	c := &domain.PetCategory{Name: req.Name, Rate: req.Rate}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.PetCategory, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	svc := &domain.Service{Name: req.Name, Price: req.Price, AvgTime: req.AvgTime}
	if err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.store.ListServices(ctx)
}

func (s *Service) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*domain.Doctor, error) {
	d := &domain.Doctor{Name: req.Name, Specialty: req.Specialty, Phone: req.Phone}
	if err := s.store.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	return s.store.ListDoctors(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{Name: req.Name, ListPrice: req.ListPrice, QtyAvailable: req.QtyAvailable}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{Name: req.Name, Phone: req.Phone, Address: req.Address, Email: req.Email}
	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
