// Package notification renders appointment e-mails and delivers them
// through a background queue.
package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Kind string

const (
	KindConfirmed   Kind = "confirmed"
	KindRescheduled Kind = "rescheduled"
	KindCancelled   Kind = "cancelled"
)

// Event is the queued payload. Dates are already in display form.
type Event struct {
	Kind          Kind   `json:"kind"`
	AppointmentID uint   `json:"appointment_id"`
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	DoctorName    string `json:"doctor_name"`
	DoctorEmail   string `json:"doctor_email"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	OldDate       string `json:"old_date,omitempty"`
	OldTime       string `json:"old_time,omitempty"`
	NotifyDoctor  bool   `json:"notify_doctor,omitempty"`
}

type Email struct {
	To      string
	Subject string
	HTML    string
}

// ForAppointment builds an event from ap. Doctor and Patient must be loaded.
func ForAppointment(kind Kind, ap *models.Appointment) Event {
	return Event{
		Kind:          kind,
		AppointmentID: ap.ID,
		PatientName:   ap.Patient.Name,
		PatientEmail:  ap.Patient.Email,
		DoctorName:    ap.Doctor.Name,
		DoctorEmail:   ap.Doctor.Email,
		Date:          displayDate(ap.SlotDate),
		Time:          ap.SlotTime,
	}
}

// WithPrevious records the slot an appointment was moved away from.
func (e Event) WithPrevious(ref schedule.SlotRef) Event {
	e.OldDate = ref.Date.Slashed()
	e.OldTime = ref.Time
	return e
}

func displayDate(key string) string {
	if k, err := schedule.ParseDateKey(key); err == nil {
		return k.Slashed()
	}
	return strings.ReplaceAll(key, "_", "/")
}

const layout = `<div style="font-family: Arial, sans-serif; line-height: 1.6;">{{template "body" .}}<p>Sincerely,<br>The Clinic Team</p></div>`

var templates = map[string]*template.Template{
	"confirmed": mustParse(`{{define "body"}}
<h2>Appointment Confirmation</h2>
<p>Hello {{.PatientName}},</p>
<p>This is a confirmation that your appointment with <strong>Dr. {{.DoctorName}}</strong> has been successfully booked.</p>
<h3>Details:</h3>
<ul><li><strong>Date:</strong> {{.Date}}</li><li><strong>Time:</strong> {{.Time}}</li></ul>
<p>We look forward to seeing you.</p>
{{end}}`),

	"rescheduled": mustParse(`{{define "body"}}
<h2>Appointment Rescheduled</h2>
<p>Hello {{.PatientName}},</p>
<p>Your appointment with <strong>Dr. {{.DoctorName}}</strong> has been rescheduled.</p>
<h3>Previous Details:</h3>
<ul><li><strong>Date:</strong> {{.OldDate}}</li><li><strong>Time:</strong> {{.OldTime}}</li></ul>
<h3>New Details:</h3>
<ul><li><strong>Date:</strong> {{.Date}}</li><li><strong>Time:</strong> {{.Time}}</li></ul>
<p>Please note the new time. We look forward to seeing you.</p>
{{end}}`),

	"cancelled_patient": mustParse(`{{define "body"}}
<h2>Appointment Cancellation Notice</h2>
<p>Hello {{.PatientName}},</p>
<p>This is to inform you that the appointment with <strong>Dr. {{.DoctorName}}</strong> scheduled for <strong>{{.Date}} at {{.Time}}</strong> has been cancelled.</p>
<p>If you have any questions, please contact our support.</p>
{{end}}`),

	"cancelled_doctor": mustParse(`{{define "body"}}
<h2>Appointment Cancellation Notice</h2>
<p>Hello Dr. {{.DoctorName}},</p>
<p>The appointment with patient <strong>{{.PatientName}}</strong> scheduled for <strong>{{.Date}} at {{.Time}}</strong> has been cancelled.</p>
{{end}}`),
}

func mustParse(body string) *template.Template {
	t := template.Must(template.New("email").Parse(layout))
	return template.Must(t.Parse(body))
}

func execute(name string, ev Event) (string, error) {
	var buf bytes.Buffer
	if err := templates[name].Execute(&buf, ev); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Render returns the e-mails an event produces.
func Render(ev Event) ([]Email, error) {
	switch ev.Kind {
	case KindConfirmed:
		html, err := execute("confirmed", ev)
		if err != nil {
			return nil, err
		}
		return []Email{{To: ev.PatientEmail, Subject: "Your Appointment is Confirmed", HTML: html}}, nil

	case KindRescheduled:
		html, err := execute("rescheduled", ev)
		if err != nil {
			return nil, err
		}
		return []Email{{To: ev.PatientEmail, Subject: "Your Appointment has been Rescheduled", HTML: html}}, nil

	case KindCancelled:
		html, err := execute("cancelled_patient", ev)
		if err != nil {
			return nil, err
		}
		out := []Email{{To: ev.PatientEmail, Subject: "An Appointment has been Cancelled", HTML: html}}

		if ev.NotifyDoctor && ev.DoctorEmail != "" {
			html, err := execute("cancelled_doctor", ev)
			if err != nil {
				return nil, err
			}
			out = append(out, Email{To: ev.DoctorEmail, Subject: "An Appointment has been Cancelled", HTML: html})
		}
		return out, nil
	}

	return nil, fmt.Errorf("unknown notification kind %q", ev.Kind)
}
