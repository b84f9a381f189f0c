package repository

import (
	"context"
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name;uniqueIndex"`
	CustomerID      int64      `gorm:"column:customer_id;index"`
	DoctorID        int64      `gorm:"column:doctor_id;index"`
	BookingDate     time.Time  `gorm:"column:booking_date;index"`
	StartTime       time.Time  `gorm:"column:start_time"`
	EndTime         time.Time  `gorm:"column:end_time"`
	Description     string     `gorm:"column:description"`
	TotalTime       int        `gorm:"column:total_time"`
	TotalPrice      int64      `gorm:"column:total_price"`
	State           string     `gorm:"column:state"`
	PaymentDate     *time.Time `gorm:"column:payment_date"`
	PaymentMethodID int64      `gorm:"column:payment_method_id"`
	InvoiceID       int64      `gorm:"column:invoice_id"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type serviceLineModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	BookingID    int64   `gorm:"column:booking_id;index"`
	PetID        int64   `gorm:"column:pet_id"`
	ServiceID    int64   `gorm:"column:service_id"`
	PriceService int64   `gorm:"column:price_service"`
	AvgTime      int     `gorm:"column:avg_time"`
	Rate         float64 `gorm:"column:rate"`
	RealPrice    int64   `gorm:"column:real_price"`
	RealTime     int     `gorm:"column:real_time"`
}

func (serviceLineModel) TableName() string { return "booking_service_lines" }

type productLineModel struct {
	ID               int64   `gorm:"column:id;primaryKey"`
	BookingID        int64   `gorm:"column:booking_id;index"`
	PetID            int64   `gorm:"column:pet_id"`
	ProductID        int64   `gorm:"column:product_id"`
	QuantitySelected int     `gorm:"column:quantity_selected"`
	SalesPrice       float64 `gorm:"column:sales_price"`
	TotalPrice       int64   `gorm:"column:total_price"`
}

func (productLineModel) TableName() string { return "booking_product_lines" }

func toDomainBooking(m bookingModel, services []serviceLineModel, products []productLineModel) *domain.Booking {
	b := &domain.Booking{
		ID:              m.ID,
		Name:            m.Name,
		CustomerID:      m.CustomerID,
		DoctorID:        m.DoctorID,
		BookingDate:     m.BookingDate,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		Description:     m.Description,
		TotalTime:       m.TotalTime,
		TotalPrice:      m.TotalPrice,
		State:           domain.BookingState(m.State),
		PaymentDate:     m.PaymentDate,
		PaymentMethodID: m.PaymentMethodID,
		InvoiceID:       m.InvoiceID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, s := range services {
		b.ServiceLines = append(b.ServiceLines, domain.ServiceLine{
			ID:           s.ID,
			BookingID:    s.BookingID,
			PetID:        s.PetID,
			ServiceID:    s.ServiceID,
			PriceService: s.PriceService,
			AvgTime:      s.AvgTime,
			Rate:         s.Rate,
			RealPrice:    s.RealPrice,
			RealTime:     s.RealTime,
		})
	}
	for _, p := range products {
		b.ProductLines = append(b.ProductLines, domain.ProductLine{
			ID:               p.ID,
			BookingID:        p.BookingID,
			PetID:            p.PetID,
			ProductID:        p.ProductID,
			QuantitySelected: p.QuantitySelected,
			SalesPrice:       p.SalesPrice,
			TotalPrice:       p.TotalPrice,
		})
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		Name:            b.Name,
		CustomerID:      b.CustomerID,
		DoctorID:        b.DoctorID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Description:     b.Description,
		TotalTime:       b.TotalTime,
		TotalPrice:      b.TotalPrice,
		State:           string(b.State),
		PaymentDate:     b.PaymentDate,
		PaymentMethodID: b.PaymentMethodID,
		InvoiceID:       b.InvoiceID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toServiceLineModels(b *domain.Booking) []serviceLineModel {
	out := make([]serviceLineModel, 0, len(b.ServiceLines))
	for _, s := range b.ServiceLines {
		out = append(out, serviceLineModel{
			ID:           s.ID,
			BookingID:    b.ID,
			PetID:        s.PetID,
			ServiceID:    s.ServiceID,
			PriceService: s.PriceService,
			AvgTime:      s.AvgTime,
			Rate:         s.Rate,
			RealPrice:    s.RealPrice,
			RealTime:     s.RealTime,
		})
	}
	return out
}

func toProductLineModels(b *domain.Booking) []productLineModel {
	out := make([]productLineModel, 0, len(b.ProductLines))
	for _, p := range b.ProductLines {
		out = append(out, productLineModel{
			ID:               p.ID,
			BookingID:        b.ID,
			PetID:            p.PetID,
			ProductID:        p.ProductID,
			QuantitySelected: p.QuantitySelected,
			SalesPrice:       p.SalesPrice,
			TotalPrice:       p.TotalPrice,
		})
	}
	return out
}

// Create persists the booking together with its lines in one transaction.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		now := time.Now()
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		b.ID = m.ID
		b.CreatedAt = m.CreatedAt
		b.UpdatedAt = m.UpdatedAt

		lines := toServiceLineModels(b)
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
			for i := range lines {
				b.ServiceLines[i].ID = lines[i].ID
				b.ServiceLines[i].BookingID = b.ID
			}
		}
		products := toProductLineModels(b)
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
			for i := range products {
				b.ProductLines[i].ID = products[i].ID
				b.ProductLines[i].BookingID = b.ID
			}
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return r.loadLines(ctx, m)
}

func (r *BookingRepository) loadLines(ctx context.Context, m bookingModel) (*domain.Booking, error) {
	var services []serviceLineModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", m.ID).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}
	var products []productLineModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", m.ID).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m, services, products), nil
}

// Update rewrites the booking row and replaces its lines in one transaction.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		m.UpdatedAt = time.Now()
		if err := tx.Model(&bookingModel{}).Where("id = ?", b.ID).Updates(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", b.ID).Delete(&serviceLineModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", b.ID).Delete(&productLineModel{}).Error; err != nil {
			return err
		}
		lines := toServiceLineModels(b)
		for i := range lines {
			lines[i].ID = 0
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		products := toProductLineModels(b)
		for i := range products {
			products[i].ID = 0
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePaymentFields moves the booking through the payment state machine
// without touching its lines.
func (r *BookingRepository) UpdatePaymentFields(ctx context.Context, id int64, state domain.BookingState, paymentDate time.Time, methodID int64) error {
	updates := map[string]interface{}{
		"state":        string(state),
		"payment_date": paymentDate,
		"updated_at":   time.Now(),
	}
	if methodID != 0 {
		updates["payment_method_id"] = methodID
	}
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *BookingRepository) UpdateState(ctx context.Context, id int64, state domain.BookingState) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"state": string(state), "updated_at": time.Now()}).Error
}

// Delete removes the booking and cascades to its lines.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&serviceLineModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", id).Delete(&productLineModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bookingModel{}, "id = ?", id).Error
	})
}

// FindOverlapping returns active bookings for the doctor on the given date
// whose half-open [start, end) window intersects the one passed in.
func (r *BookingRepository) FindOverlapping(ctx context.Context, doctorID int64, date time.Time, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Where("booking_date = ?", date).
		Where("state <> ?", string(domain.BookingStateCancel)).
		Where("id <> ?", excludeID).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m, nil, nil))
	}
	return out, nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("booking_date desc, start_time desc")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		b, err := r.loadLines(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *BookingRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).Where("booking_date = ?", date).Order("start_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m, nil, nil))
	}
	return out, nil
}

// MaxNameSuffix scans the highest numeric suffix among existing booking
// names, used to seed the booking sequence from legacy data.
func (r *BookingRepository) MaxNameSuffix(ctx context.Context) (int64, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&bookingModel{}).Order("id desc").Limit(1).Pluck("name", &names).Error; err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, nil
	}
	return parseSuffix(names[0])
}
