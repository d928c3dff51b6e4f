package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fakeMailer struct {
	sent []Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, e Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:       9,
		SlotDate: "05_07_2024",
		SlotTime: "09:00 AM",
		Patient:  models.Patient{Name: "Ana <b>", Email: "ana@example.com"},
		Doctor:   models.Doctor{Name: "Rui", Email: "rui@example.com"},
	}
}

func TestForAppointment_FormatsDate(t *testing.T) {
	ev := ForAppointment(KindConfirmed, sampleAppointment())
	if ev.Date != "5/7/2024" {
		t.Fatalf("expected 5/7/2024, got %s", ev.Date)
	}
	if ev.PatientEmail != "ana@example.com" || ev.DoctorEmail != "rui@example.com" {
		t.Fatalf("unexpected recipients %+v", ev)
	}
}

func TestRender_ConfirmedEscapesNames(t *testing.T) {
	emails, err := Render(ForAppointment(KindConfirmed, sampleAppointment()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(emails) != 1 || emails[0].To != "ana@example.com" {
		t.Fatalf("unexpected emails %+v", emails)
	}
	body := emails[0].HTML
	if strings.Contains(body, "Ana <b>") {
		t.Error("patient name must be escaped")
	}
	if !strings.Contains(body, "5/7/2024") || !strings.Contains(body, "09:00 AM") {
		t.Error("expected date and time in the body")
	}
}

func TestRender_RescheduledShowsBothSlots(t *testing.T) {
	old, _ := schedule.NewSlotRef("4_7_2024", "03:00 PM")
	ev := ForAppointment(KindRescheduled, sampleAppointment()).WithPrevious(old)

	emails, err := Render(ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := emails[0].HTML
	if !strings.Contains(body, "4/7/2024") || !strings.Contains(body, "03:00 PM") {
		t.Error("expected previous slot in the body")
	}
	if !strings.Contains(body, "5/7/2024") {
		t.Error("expected new slot in the body")
	}
}

func TestRender_CancelledDoctorCopy(t *testing.T) {
	ev := ForAppointment(KindCancelled, sampleAppointment())

	emails, _ := Render(ev)
	if len(emails) != 1 {
		t.Fatalf("expected patient only, got %d", len(emails))
	}

	ev.NotifyDoctor = true
	emails, _ = Render(ev)
	if len(emails) != 2 || emails[1].To != "rui@example.com" {
		t.Fatalf("expected a doctor copy, got %+v", emails)
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, err := Render(Event{Kind: "reminder"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestHandler_ProcessTask(t *testing.T) {
	mailer := &fakeMailer{}
	h := NewHandler(mailer, zap.NewNop())

	task, err := NewEmailTask(ForAppointment(KindConfirmed, sampleAppointment()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeEmailSend {
		t.Fatalf("unexpected task type %s", task.Type())
	}

	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one e-mail, got %d", len(mailer.sent))
	}
}

func TestHandler_BadPayloadIsNotRetried(t *testing.T) {
	h := NewHandler(&fakeMailer{}, zap.NewNop())

	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeEmailSend, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandler_MailerErrorIsReturned(t *testing.T) {
	h := NewHandler(&fakeMailer{err: errors.New("smtp down")}, zap.NewNop())

	err := h.Deliver(context.Background(), ForAppointment(KindConfirmed, sampleAppointment()))
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected a retryable error, got %v", err)
	}
}
