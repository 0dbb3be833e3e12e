package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"eventhub/internal/data/entity"
	"eventhub/internal/data/repository"
	"eventhub/internal/gateway"

	"github.com/google/uuid"
)

// In-memory fakes implementing the repository and gateway interfaces.

type fakeVenueRepo struct {
	mu       sync.Mutex
	venues   map[uuid.UUID]*entity.Venue
	bookings *fakeBookingRepo
}

func newFakeVenueRepo(bookings *fakeBookingRepo) *fakeVenueRepo {
	return &fakeVenueRepo{
		venues:   make(map[uuid.UUID]*entity.Venue),
		bookings: bookings,
	}
}

// derive mirrors the repository's read queries: reads return a copy with
// the effective status computed from the interval set, while the stored
// row keeps only the base state.
func (f *fakeVenueRepo) derive(venue *entity.Venue) *entity.Venue {
	clone := *venue
	clone.EffectiveStatus = clone.Status
	if clone.Status == entity.VenueStatusAvailable && f.bookings != nil && f.bookings.coversNow(clone.ID) {
		clone.EffectiveStatus = entity.VenueStatusBooked
	}
	return &clone
}

func (f *fakeVenueRepo) Create(ctx context.Context, venue *entity.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeVenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	venue, ok := f.venues[id]
	if !ok || venue.DeletedAt != nil {
		return nil, nil
	}
	return f.derive(venue), nil
}

func (f *fakeVenueRepo) FindAll(ctx context.Context, filter repository.VenueFilter) ([]*entity.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Venue
	for _, venue := range f.venues {
		if venue.DeletedAt != nil {
			continue
		}
		if filter.Type != "" && string(venue.Type) != filter.Type {
			continue
		}
		if filter.MinCapacity > 0 && venue.Capacity < filter.MinCapacity {
			continue
		}
		result = append(result, f.derive(venue))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EffectiveStatus != result[j].EffectiveStatus {
			return result[i].EffectiveStatus < result[j].EffectiveStatus
		}
		if result[i].Type != result[j].Type {
			return result[i].Type < result[j].Type
		}
		return result[i].Capacity < result[j].Capacity
	})
	return result, nil
}

func (f *fakeVenueRepo) Update(ctx context.Context, venue *entity.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.venues[venue.ID]; !ok {
		return fmt.Errorf("venue %s: %w", venue.ID, entity.ErrNotFound)
	}
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	venue, ok := f.venues[id]
	if !ok || venue.DeletedAt != nil {
		return fmt.Errorf("venue %s: %w", id, entity.ErrNotFound)
	}
	now := venue.UpdatedAt
	venue.DeletedAt = &now
	return nil
}

// fakeBookingRepo enforces the same disjointness rule the SQL allocation
// transaction enforces, so service tests exercise the full conflict path.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.VenueBooking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.VenueBooking)}
}

func (f *fakeBookingRepo) Allocate(ctx context.Context, booking *entity.VenueBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.VenueID != booking.VenueID {
			continue
		}
		if entity.Overlaps(existing.StartTime, existing.EndTime, booking.StartTime, booking.EndTime) {
			return fmt.Errorf("venue %s already booked for an overlapping window: %w",
				booking.VenueID, entity.ErrConflict)
		}
	}
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.VenueBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return booking, nil
}

func (f *fakeBookingRepo) FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.VenueBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.VenueBooking
	for _, booking := range f.bookings {
		if booking.VenueID == venueID {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (f *fakeBookingRepo) CountFutureByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, booking := range f.bookings {
		if booking.VenueID == venueID && booking.EndTime.After(time.Now()) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) coversNow(venueID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, booking := range f.bookings {
		if booking.VenueID == venueID && booking.Covers(now) {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return fmt.Errorf("booking %s: %w", id, entity.ErrNotFound)
	}
	delete(f.bookings, id)
	return nil
}

type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[uuid.UUID]*entity.Event)}
	for _, event := range events {
		repo.events[event.ID] = event
	}
	return repo
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	return event, nil
}

// fakeAuditRepo reports each write on a channel so tests can wait for the
// fire-and-forget goroutine.
type fakeAuditRepo struct {
	err   error
	calls chan *entity.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{calls: make(chan *entity.AuditLog, 8)}
}

func (f *fakeAuditRepo) Create(ctx context.Context, record *entity.AuditLog) error {
	f.calls <- record
	return f.err
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	registrations map[uuid.UUID]*entity.Registration
}

func newFakeRegistrationRepo(registrations ...*entity.Registration) *fakeRegistrationRepo {
	repo := &fakeRegistrationRepo{registrations: make(map[uuid.UUID]*entity.Registration)}
	for _, reg := range registrations {
		repo.registrations[reg.ID] = reg
	}
	return repo
}

func (f *fakeRegistrationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.registrations[id]
	if !ok {
		return nil, nil
	}
	return reg, nil
}

func (f *fakeRegistrationRepo) MarkCompleted(ctx context.Context, id, paymentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.registrations[id]
	if !ok {
		return fmt.Errorf("registration %s: %w", id, entity.ErrNotFound)
	}
	reg.PaymentStatus = entity.RegistrationPaymentCompleted
	reg.PaymentID = &paymentID
	return nil
}

func (f *fakeRegistrationRepo) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.registrations[id]
	if !ok || reg.PaymentStatus != entity.RegistrationPaymentCompleted {
		return fmt.Errorf("registration %s: %w", id, entity.ErrNotFound)
	}
	reg.PaymentStatus = entity.RegistrationPaymentRefunded
	return nil
}

// fakePaymentRepo mimics the conditional-UPDATE transition semantics of
// the real repository.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.Payment
	byOrder  map[string]uuid.UUID
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{
		payments: make(map[uuid.UUID]*entity.Payment),
		byOrder:  make(map[string]uuid.UUID),
	}
	for _, payment := range payments {
		repo.payments[payment.ID] = payment
		repo.byOrder[payment.ProviderOrderID] = payment.ID
	}
	return repo
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[payment.ID] = payment
	f.byOrder[payment.ProviderOrderID] = payment.ID
	return nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	clone := *payment
	return &clone, nil
}

func (f *fakePaymentRepo) FindByOrderID(ctx context.Context, providerOrderID string) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byOrder[providerOrderID]
	if !ok {
		return nil, nil
	}
	clone := *f.payments[id]
	return &clone, nil
}

func (f *fakePaymentRepo) MarkSucceeded(ctx context.Context, id uuid.UUID, providerPaymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok || payment.Status != entity.PaymentStatusPending {
		return fmt.Errorf("payment %s: %w", id, entity.ErrPaymentNotPending)
	}
	payment.Status = entity.PaymentStatusSuccess
	payment.ProviderPaymentID = &providerPaymentID
	return nil
}

func (f *fakePaymentRepo) MarkFailed(ctx context.Context, id uuid.UUID, providerPaymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok || payment.Status != entity.PaymentStatusPending {
		return fmt.Errorf("payment %s: %w", id, entity.ErrPaymentNotPending)
	}
	payment.Status = entity.PaymentStatusFailed
	payment.ProviderPaymentID = &providerPaymentID
	return nil
}

func (f *fakePaymentRepo) MarkRefunded(ctx context.Context, id uuid.UUID, refundID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok || payment.Status != entity.PaymentStatusSuccess {
		return fmt.Errorf("payment %s is not refundable: %w", id, entity.ErrConflict)
	}
	payment.Status = entity.PaymentStatusRefunded
	payment.RefundID = &refundID
	return nil
}

func (f *fakePaymentRepo) status(id uuid.UUID) entity.PaymentStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payments[id].Status
}

type fakeGateway struct {
	createOrderFn func(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
	refundFn      func(ctx context.Context, providerPaymentID string, amount int64) (*gateway.RefundResult, error)

	lastAmount   int64
	lastCurrency string
	lastReceipt  string
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error) {
	f.lastAmount = amount
	f.lastCurrency = currency
	f.lastReceipt = receipt
	if f.createOrderFn != nil {
		return f.createOrderFn(ctx, amount, currency, receipt)
	}
	return &gateway.Order{ID: "order_test", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (f *fakeGateway) Refund(ctx context.Context, providerPaymentID string, amount int64) (*gateway.RefundResult, error) {
	if f.refundFn != nil {
		return f.refundFn(ctx, providerPaymentID, amount)
	}
	return &gateway.RefundResult{ID: "rfnd_test", PaymentID: providerPaymentID, Amount: amount, Status: "processed"}, nil
}
