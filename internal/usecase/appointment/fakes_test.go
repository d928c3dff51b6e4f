package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var errDB = errors.New("db down")

// --------------------------------------------------
// Repository
// --------------------------------------------------

type memoryRepo struct {
	doctors      map[uint]models.Doctor
	patients     map[uint]models.Patient
	appointments map[uint]models.Appointment
	nextID       uint

	createErr error
	updateErr error

	// beforeMove runs inside MoveAppointment, before the stored row is checked.
	beforeMove func()
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		doctors:      map[uint]models.Doctor{},
		patients:     map[uint]models.Patient{},
		appointments: map[uint]models.Appointment{},
		nextID:       1,
	}
}

func (r *memoryRepo) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	return &d, nil
}

func (r *memoryRepo) GetPatient(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	return &p, nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	ap.ID = r.nextID
	r.nextID++
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) MoveAppointment(_ context.Context, ap *models.Appointment, from schedule.SlotRef) error {
	if r.beforeMove != nil {
		r.beforeMove()
	}
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.appointments[ap.ID]
	if !ok || stored.Status != string(domain.StatusBooked) {
		return domain.ErrAppointmentChanged
	}
	if at, err := domain.SlotOf(&stored); err != nil || at != from {
		return domain.ErrAppointmentChanged
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	ap.Doctor = r.doctors[ap.DoctorID]
	ap.Patient = r.patients[ap.PatientID]
	return &ap, nil
}

func (r *memoryRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for id := uint(1); id < r.nextID; id++ {
		if ap, ok := r.appointments[id]; ok && keep(ap) {
			out = append(out, ap)
		}
	}
	return out
}

func (r *memoryRepo) ListForPatient(_ context.Context, patientID uint) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.PatientID == patientID }), nil
}

func (r *memoryRepo) ListForDoctor(_ context.Context, doctorID uint) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.DoctorID == doctorID }), nil
}

func (r *memoryRepo) ListForDoctorPeriod(_ context.Context, doctorID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.DoctorID == doctorID && !ap.SlotAt.Before(start) && ap.SlotAt.Before(end)
	}), nil
}

func (r *memoryRepo) ListAll(context.Context) ([]models.Appointment, error) {
	return r.filter(func(models.Appointment) bool { return true }), nil
}

// --------------------------------------------------
// Registry store
// --------------------------------------------------

type memoryStore struct {
	mu   sync.Mutex
	regs map[uint]schedule.Registry

	// steal reserves this slot for someone else right before Apply runs.
	steal *schedule.SlotRef
}

func newMemoryStore() *memoryStore {
	return &memoryStore{regs: map[uint]schedule.Registry{}}
}

func (s *memoryStore) reg(doctorID uint) schedule.Registry {
	r, ok := s.regs[doctorID]
	if !ok {
		r = schedule.NewRegistry()
		s.regs[doctorID] = r
	}
	return r
}

func (s *memoryStore) Booked(_ context.Context, doctorID uint, keys []schedule.DateKey) (schedule.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := schedule.NewRegistry()
	src := s.reg(doctorID)
	for _, k := range keys {
		for label := range src.Day(k) {
			out.Add(schedule.SlotRef{Date: k, Time: label})
		}
	}
	return out, nil
}

func (s *memoryStore) Apply(_ context.Context, m schedule.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.reg(m.DoctorID)
	if s.steal != nil {
		r.Add(*s.steal)
		s.steal = nil
	}
	if r.Has(m.Reserve) {
		return schedule.ErrSlotUnavailable
	}
	if m.Release != nil {
		r.Remove(*m.Release)
	}
	r.Add(m.Reserve)
	return nil
}

func (s *memoryStore) Release(_ context.Context, doctorID uint, ref schedule.SlotRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg(doctorID).Remove(ref)
	return nil
}

func (s *memoryStore) has(doctorID uint, date, label string) bool {
	ref, err := schedule.NewSlotRef(date, label)
	if err != nil {
		panic(err)
	}
	return s.reg(doctorID).Has(ref)
}

func (s *memoryStore) reserve(doctorID uint, date, label string) {
	ref, err := schedule.NewSlotRef(date, label)
	if err != nil {
		panic(err)
	}
	s.reg(doctorID).Add(ref)
}

// --------------------------------------------------
// Notifier
// --------------------------------------------------

type memoryNotifier struct {
	events []notification.Event
}

func (n *memoryNotifier) Notify(_ context.Context, ev notification.Event) error {
	n.events = append(n.events, ev)
	return nil
}

// --------------------------------------------------
// Fixture
// --------------------------------------------------

// Friday 5 July 2024, 08:00 in the clinic.
var testNow = time.Date(2024, time.July, 5, 8, 0, 0, 0, time.UTC)

const (
	doctorID  uint = 10
	patientID uint = 20
	otherID   uint = 21
)

type fixture struct {
	repo     *memoryRepo
	store    *memoryStore
	notifier *memoryNotifier
	clock    timezone.Clock
}

func newFixture() *fixture {
	repo := newMemoryRepo()
	repo.doctors[doctorID] = models.Doctor{
		ID:        doctorID,
		Name:      "Rui Costa",
		Email:     "rui@example.com",
		Fees:      150,
		Available: true,
	}
	repo.patients[patientID] = models.Patient{ID: patientID, Name: "Ana", Email: "ana@example.com"}
	repo.patients[otherID] = models.Patient{ID: otherID, Name: "Bia", Email: "bia@example.com"}

	return &fixture{
		repo:     repo,
		store:    newMemoryStore(),
		notifier: &memoryNotifier{},
		clock:    timezone.FixedClock(testNow),
	}
}

func (f *fixture) book() *BookAppointment {
	return NewBookAppointment(f.repo, f.store, f.clock, nil, f.notifier, zap.NewNop())
}

func (f *fixture) reschedule() *RescheduleAppointment {
	return NewRescheduleAppointment(f.repo, f.store, f.clock, nil, f.notifier, zap.NewNop())
}

func (f *fixture) cancel() *CancelAppointment {
	return NewCancelAppointment(f.repo, f.store, f.clock, nil, f.notifier, zap.NewNop())
}

func (f *fixture) mustBook(date, label string) *models.Appointment {
	ap, err := f.book().Execute(context.Background(), BookAppointmentInput{
		PatientID: patientID,
		DoctorID:  doctorID,
		SlotDate:  date,
		SlotTime:  label,
	})
	if err != nil {
		panic(err)
	}
	return ap
}

var patientActor = domain.Actor{Role: domain.RolePatient, ID: patientID}

func mustRef(date, label string) schedule.SlotRef {
	ref, err := schedule.NewSlotRef(date, label)
	if err != nil {
		panic(err)
	}
	return ref
}
