package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"periodic-tables/backend/internal/model"
	"periodic-tables/backend/internal/repository"
	"periodic-tables/backend/pkg/events"
)

// ── Mock ReservationRepository ──

type mockReservationRepo struct {
	reservations map[int64]*model.Reservation
	nextID       int64
	err          error // returned by every call when set
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{reservations: make(map[int64]*model.Reservation), nextID: 1}
}

func (m *mockReservationRepo) put(r *model.Reservation) *model.Reservation {
	if r.ReservationID == 0 {
		r.ReservationID = m.nextID
	}
	if r.ReservationID >= m.nextID {
		m.nextID = r.ReservationID + 1
	}
	m.reservations[r.ReservationID] = r
	return r
}

func (m *mockReservationRepo) Create(_ context.Context, r *model.Reservation) error {
	if m.err != nil {
		return m.err
	}
	if r.Status == "" {
		r.Status = model.StatusBooked
	}
	m.put(r)
	return nil
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int64) (*model.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.reservations[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) sorted(keep func(*model.Reservation) bool) []model.Reservation {
	var result []model.Reservation
	for _, r := range m.reservations {
		if keep(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ReservationDate != result[j].ReservationDate {
			return result[i].ReservationDate < result[j].ReservationDate
		}
		return result[i].ReservationTime < result[j].ReservationTime
	})
	return result
}

func (m *mockReservationRepo) List(_ context.Context) ([]model.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(*model.Reservation) bool { return true }), nil
}

func (m *mockReservationRepo) ListByDate(_ context.Context, date string) ([]model.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(r *model.Reservation) bool {
		return string(r.ReservationDate) == date &&
			r.Status != model.StatusFinished && r.Status != model.StatusCancelled
	}), nil
}

func (m *mockReservationRepo) ListByMobileNumber(_ context.Context, mobile string) ([]model.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(r *model.Reservation) bool {
		return strings.Contains(r.MobileNumber, mobile)
	}), nil
}

func (m *mockReservationRepo) Update(_ context.Context, r *model.Reservation) error {
	if m.err != nil {
		return m.err
	}
	cp := *r
	m.reservations[r.ReservationID] = &cp
	return nil
}

func (m *mockReservationRepo) UpdateStatus(_ context.Context, id int64, status model.ReservationStatus) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.reservations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (m *mockReservationRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	delete(m.reservations, id)
	return nil
}

// ── Mock TableRepository ──

type mockTableRepo struct {
	tables       map[int64]*model.Table
	reservations *mockReservationRepo
	nextID       int64
}

func newMockTableRepo(reservations *mockReservationRepo) *mockTableRepo {
	return &mockTableRepo{tables: make(map[int64]*model.Table), reservations: reservations, nextID: 1}
}

func (m *mockTableRepo) Create(_ context.Context, t *model.Table) error {
	t.TableID = m.nextID
	m.nextID++
	m.tables[t.TableID] = t
	return nil
}

func (m *mockTableRepo) GetByID(_ context.Context, id int64) (*model.Table, error) {
	if t, ok := m.tables[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTableRepo) List(_ context.Context) ([]model.Table, error) {
	var result []model.Table
	for _, t := range m.tables {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTableRepo) Seat(_ context.Context, tableID, reservationID int64) error {
	t := m.tables[tableID]
	if t.ReservationID != nil {
		return repository.ErrTableOccupied
	}
	id := reservationID
	t.ReservationID = &id
	m.reservations.reservations[reservationID].Status = model.StatusSeated
	return nil
}

func (m *mockTableRepo) Finish(_ context.Context, tableID, reservationID int64) error {
	m.tables[tableID].ReservationID = nil
	if r, ok := m.reservations.reservations[reservationID]; ok && r.Status == model.StatusSeated {
		r.Status = model.StatusFinished
	}
	return nil
}

// ── Recording publisher ──

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var types []string
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}
