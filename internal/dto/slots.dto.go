package dto

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
)

type SlotDTO struct {
	DateTime time.Time `json:"datetime"`
	Time     string    `json:"time"`
}

type DaySlotsDTO struct {
	SlotDate string    `json:"slot_date"`
	Day      time.Time `json:"day"`
	Weekday  string    `json:"weekday"`
	Slots    []SlotDTO `json:"slots"`
}

// FromWeek keeps every day, including the ones with no free slot.
func FromWeek(w schedule.Week) []DaySlotsDTO {
	out := make([]DaySlotsDTO, 0, len(w))
	for _, d := range w {
		slots := make([]SlotDTO, 0, len(d.Slots))
		for _, s := range d.Slots {
			slots = append(slots, SlotDTO{DateTime: s.DateTime, Time: s.Label})
		}
		out = append(out, DaySlotsDTO{
			SlotDate: d.Date.String(),
			Day:      d.Day,
			Weekday:  strings.ToUpper(d.Day.Weekday().String()[:3]),
			Slots:    slots,
		})
	}
	return out
}
