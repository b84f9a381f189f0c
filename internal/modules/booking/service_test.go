package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	nextID   int64
	deleted  []int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	f.nextID++
	b.ID = f.nextID
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) UpdateState(ctx context.Context, id int64, state domain.BookingState) error {
	f.bookings[id].State = state
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBookingRepo) FindOverlapping(ctx context.Context, doctorID int64, date time.Time, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.ID == excludeID || b.DoctorID != doctorID || !b.BookingDate.Equal(date) {
			continue
		}
		if b.State == domain.BookingStateCancel {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.BookingDate.Equal(date) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakePetReader struct {
	pets map[int64]*domain.Pet
}

func (f *fakePetReader) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeCatalog struct {
	categories map[int64]*domain.PetCategory
	doctors    map[int64]*domain.Doctor
	services   map[int64]*domain.Service
	products   map[int64]*domain.Product
	customers  map[int64]*domain.Customer
}

func (f *fakeCatalog) CategoryByID(ctx context.Context, id int64) (*domain.PetCategory, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) DoctorByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) ServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSequence struct {
	value int64
}

func (f *fakeSequence) Next(ctx context.Context, name string) (int64, error) {
	f.value++
	return f.value, nil
}

type fakeCalendar struct {
	created []domain.CalendarEvent
	removed []string
}

func (f *fakeCalendar) Create(ctx context.Context, e *domain.CalendarEvent) error {
	f.created = append(f.created, *e)
	return nil
}

func (f *fakeCalendar) DeleteMatching(ctx context.Context, subject string, start, stop time.Time) error {
	f.removed = append(f.removed, subject)
	return nil
}

type fakeInventory struct {
	consumed []int
	err      error
}

func (f *fakeInventory) Consume(ctx context.Context, partnerID, productID int64, qty int) (*domain.StockTransfer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.consumed = append(f.consumed, qty)
	return &domain.StockTransfer{ProductID: productID, Quantity: qty}, nil
}

type fixture struct {
	repo      *fakeBookingRepo
	calendar  *fakeCalendar
	inventory *fakeInventory
	svc       *Service
}

func newFixture() *fixture {
	repo := newFakeBookingRepo()
	calendar := &fakeCalendar{}
	inv := &fakeInventory{}
	catalog := &fakeCatalog{
		categories: map[int64]*domain.PetCategory{
			1: {ID: 1, Name: "Kucing", Rate: 1.0},
			2: {ID: 2, Name: "Anjing Besar", Rate: 1.5},
		},
		doctors: map[int64]*domain.Doctor{
			1: {ID: 1, Name: "drh. Sari Wulandari"},
			2: {ID: 2, Name: "drh. Budi Santoso"},
		},
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Grooming", Price: 100, AvgTime: 60},
			2: {ID: 2, Name: "Vaksinasi", Price: 150, AvgTime: 30},
		},
		products: map[int64]*domain.Product{
			1: {ID: 1, Name: "Shampoo", ListPrice: 50, QtyAvailable: 10},
		},
		customers: map[int64]*domain.Customer{
			1: {ID: 1, Name: "Andi"},
			2: {ID: 2, Name: "Siti"},
		},
	}
	petReader := &fakePetReader{pets: map[int64]*domain.Pet{
		1: {ID: 1, PetID: "PET_000001", Name: "Milo", TypeID: 2, OwnerID: 1},
		2: {ID: 2, PetID: "PET_000002", Name: "Cici", TypeID: 1, OwnerID: 2},
	}}
	svc := NewService(repo, petReader, catalog, &fakeSequence{}, calendar, inv, zap.NewNop())
	return &fixture{repo: repo, calendar: calendar, inventory: inv, svc: svc}
}

func createReq(start time.Time) CreateBookingRequest {
	return CreateBookingRequest{
		CustomerID:  1,
		DoctorID:    1,
		BookingDate: "2026-09-10",
		StartTime:   start,
		ServiceLines: []ServiceLineRequest{
			{PetID: 1, ServiceID: 1},
		},
	}
}

func TestRecompute_DerivesTotals(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		StartTime: start,
		ServiceLines: []domain.ServiceLine{
			{RealPrice: 150, RealTime: 90},
			{RealPrice: 150, RealTime: 30},
		},
		ProductLines: []domain.ProductLine{
			{TotalPrice: 100},
		},
	}

	Recompute(b)

	assert.Equal(t, 120, b.TotalTime)
	assert.Equal(t, int64(400), b.TotalPrice)
	assert.Equal(t, start.Add(120*time.Minute), b.EndTime)

	// Idempotent: running it again changes nothing.
	Recompute(b)
	assert.Equal(t, 120, b.TotalTime)
	assert.Equal(t, int64(400), b.TotalPrice)
}

func TestCreateBooking_AppliesCategoryRate(t *testing.T) {
	f := newFixture()
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	b, err := f.svc.CreateBooking(context.Background(), createReq(start))
	require.NoError(t, err)

	// Pet 1 is a large dog (rate 1.5); Grooming is 100 / 60 min.
	require.Len(t, b.ServiceLines, 1)
	assert.Equal(t, int64(150), b.ServiceLines[0].RealPrice)
	assert.Equal(t, 90, b.ServiceLines[0].RealTime)
	assert.Equal(t, int64(150), b.TotalPrice)
	assert.Equal(t, start.Add(90*time.Minute), b.EndTime)
	assert.Equal(t, "CL_000001", b.Name)
	assert.Equal(t, domain.BookingStateBooking, b.State)
}

func TestCreateBooking_EmitsCalendarEvent(t *testing.T) {
	f := newFixture()
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	b, err := f.svc.CreateBooking(context.Background(), createReq(start))
	require.NoError(t, err)

	require.Len(t, f.calendar.created, 1)
	ev := f.calendar.created[0]
	assert.Equal(t, "drh. Sari Wulandari | CL_000001", ev.Subject)
	assert.Equal(t, b.StartTime, ev.Start)
	assert.Equal(t, b.EndTime, ev.Stop)
}

func TestCreateBooking_EmptyServiceLines(t *testing.T) {
	f := newFixture()
	req := createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))
	req.ServiceLines = nil

	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmptyBooking)
}

func TestCreateBooking_OwnershipMismatch(t *testing.T) {
	f := newFixture()
	req := createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))
	// Pet 2 belongs to customer 2, booking is for customer 1.
	req.ServiceLines = []ServiceLineRequest{{PetID: 2, ServiceID: 1}}

	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrOwnershipMismatch)
}

func TestCreateBooking_HalfOpenOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// A: [10:00, 11:30) — Grooming at rate 1.5 runs 90 minutes.
	_, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// B touches A at 11:30; half-open windows do not conflict.
	_, err = f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 11, 30, 0, 0, time.UTC)))
	require.NoError(t, err)

	// C starts inside A and must be rejected with the doctor named.
	_, err = f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC)))
	require.ErrorIs(t, err, ErrSchedulingConflict)
	assert.Contains(t, err.Error(), "drh. Sari Wulandari")
}

func TestCreateBooking_OtherDoctorDoesNotConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	req := createReq(time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC))
	req.DoctorID = 2
	_, err = f.svc.CreateBooking(ctx, req)
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledBookingDoesNotBlockSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, a.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 30, 0, 0, time.UTC)))
	assert.NoError(t, err)
}

func TestCreateBooking_SequentialIdentifiers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b1, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	b2, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 11, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.Equal(t, "CL_000001", b1.Name)
	assert.Equal(t, "CL_000002", b2.Name)
}

func TestCreateBooking_ProductLineStockGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))
	req.ProductLines = []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: -1}}
	_, err := f.svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	req.ProductLines = []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: 11}}
	_, err = f.svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was consumed and no booking survived the rejected attempts.
	assert.Empty(t, f.inventory.consumed)
	assert.Empty(t, f.repo.bookings)
}

func TestCreateBooking_ConsumesStockAndPricesProducts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))
	req.ProductLines = []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: 2}}

	b, err := f.svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	require.Len(t, b.ProductLines, 1)
	assert.Equal(t, int64(100), b.ProductLines[0].TotalPrice)
	assert.Equal(t, int64(250), b.TotalPrice)
	assert.Equal(t, []int{2}, f.inventory.consumed)
}

func TestCreateBooking_RollsBackOnFailedStockTransfer(t *testing.T) {
	f := newFixture()
	f.inventory.err = assert.AnError
	ctx := context.Background()

	req := createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))
	req.ProductLines = []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: 2}}

	_, err := f.svc.CreateBooking(ctx, req)
	require.Error(t, err)
	assert.Empty(t, f.repo.bookings)
}

func TestUpdateBooking_RestoresPriorStateOnFailedStockTransfer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	b, err := f.svc.CreateBooking(ctx, createReq(start))
	require.NoError(t, err)

	f.inventory.err = assert.AnError
	newStart := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	_, err = f.svc.UpdateBooking(ctx, b.ID, UpdateBookingRequest{
		StartTime:    &newStart,
		ProductLines: []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: 2}},
	})
	require.Error(t, err)

	// The stored booking rolled back to its pre-update state.
	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.StartTime.Equal(start))
	assert.True(t, stored.EndTime.Equal(start.Add(90*time.Minute)))
	assert.Empty(t, stored.ProductLines)
	assert.Equal(t, int64(150), stored.TotalPrice)
}

func TestUpdateBooking_ReconsumesSubmittedProductLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))
	req.ProductLines = []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: 2}}
	b, err := f.svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	// Resubmitting the same line consumes its full quantity again; product
	// lines are re-picked wholesale, not diffed against the stored ones.
	_, err = f.svc.UpdateBooking(ctx, b.ID, UpdateBookingRequest{
		ProductLines: []ProductLineRequest{{PetID: 1, ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, f.inventory.consumed)
}

func TestUpdateBooking_ImmutableOncePaidOrCancelled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	for _, state := range []domain.BookingState{domain.BookingStatePaid, domain.BookingStateCancel} {
		f.repo.bookings[b.ID].State = state
		desc := "late edit"
		_, err = f.svc.UpdateBooking(ctx, b.ID, UpdateBookingRequest{Description: &desc})
		assert.ErrorIs(t, err, ErrImmutableBooking, "state %s", state)
	}
}

func TestUpdateBooking_ResyncsCalendarOnTimingChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	newStart := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	updated, err := f.svc.UpdateBooking(ctx, b.ID, UpdateBookingRequest{StartTime: &newStart})
	require.NoError(t, err)

	assert.Equal(t, newStart.Add(90*time.Minute), updated.EndTime)
	require.Len(t, f.calendar.removed, 1)
	assert.Equal(t, "drh. Sari Wulandari | CL_000001", f.calendar.removed[0])
	// One event from create, one from the resync.
	require.Len(t, f.calendar.created, 2)
	assert.Equal(t, newStart, f.calendar.created[1].Start)
}

func TestCancelBooking_AllowedFromAnyState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// Even paid bookings can be cancelled; the gap is logged, not guarded.
	f.repo.bookings[b.ID].State = domain.BookingStatePaid
	got, err := f.svc.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStateCancel, got.State)
}

func TestDeleteBooking_RemovesCalendarEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, createReq(time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteBooking(ctx, b.ID))
	require.Len(t, f.calendar.removed, 1)
	assert.Equal(t, "drh. Sari Wulandari | CL_000001", f.calendar.removed[0])
	assert.Empty(t, f.repo.bookings)
}

func TestGetBooking_NotFound(t *testing.T) {
	f := newFixture()
	_, _, _, err := f.svc.GetBooking(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
