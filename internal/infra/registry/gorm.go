package registry

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// GormStore keeps the registry as one booked_slots row per reserved slot.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Booked(
	ctx context.Context,
	doctorID uint,
	keys []schedule.DateKey,
) (schedule.Registry, error) {

	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, k.String())
	}

	var rows []models.BookedSlot
	if err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND slot_date IN ?", doctorID, dates).
		Find(&rows).Error; err != nil {
		return schedule.Registry{}, err
	}

	legacy := make(map[string][]string, len(keys))
	for _, r := range rows {
		legacy[r.SlotDate] = append(legacy[r.SlotDate], r.SlotTime)
	}
	return schedule.FromLegacy(legacy), nil
}

// Apply inserts the reserved row with ON CONFLICT DO NOTHING and deletes the
// released one in the same transaction.
func (s *GormStore) Apply(ctx context.Context, m schedule.Mutation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.BookedSlot{
			DoctorID: m.DoctorID,
			SlotDate: m.Reserve.Date.String(),
			SlotTime: m.Reserve.Time,
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			if httperr.IsUniqueViolation(res.Error) {
				return schedule.ErrSlotUnavailable
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return schedule.ErrSlotUnavailable
		}

		if m.Release != nil {
			return deleteSlot(tx, m.DoctorID, *m.Release)
		}
		return nil
	})
}

func (s *GormStore) Release(ctx context.Context, doctorID uint, ref schedule.SlotRef) error {
	return deleteSlot(s.db.WithContext(ctx), doctorID, ref)
}

func deleteSlot(tx *gorm.DB, doctorID uint, ref schedule.SlotRef) error {
	return tx.
		Where(
			"doctor_id = ? AND slot_date = ? AND slot_time IN ?",
			doctorID, ref.Date.String(), schedule.LabelVariants(ref.Time),
		).
		Delete(&models.BookedSlot{}).Error
}

var _ schedule.Store = (*GormStore)(nil)
