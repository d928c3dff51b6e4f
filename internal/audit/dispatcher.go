package audit

import (
	"sync"

	"go.uber.org/zap"
)

const (
	ActionBooked       = "appointment_booked"
	ActionRescheduled  = "appointment_rescheduled"
	ActionCancelled    = "appointment_cancelled"
	ActionCompleted    = "appointment_completed"
	ActionSlotConflict = "slot_conflict"
	ActionPaid         = "appointment_paid"
	ActionDoctorAdded  = "doctor_added"
	ActionDoctorRemove = "doctor_removed"
)

type Event struct {
	ActorRole string
	ActorID   *uint
	DoctorID  *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Sink persists events.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch never blocks. When the buffer is full the event is dropped.
// A nil dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
