package appointment

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// WorkingHoursOf reads the doctor's configured window. Empty values fall back
// to schedule.DefaultWorkingHours.
func WorkingHoursOf(doc *models.Doctor) (schedule.WorkingHours, error) {
	return schedule.ParseWorkingHours(doc.WorkStart, doc.WorkEnd)
}
