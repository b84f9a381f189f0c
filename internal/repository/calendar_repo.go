package repository

import (
	"context"
	"time"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

	"gorm.io/gorm"
)

// CalendarRepository mirrors booking windows into the host calendar table.
type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

type calendarEventModel struct {
	ID      int64     `gorm:"column:id;primaryKey"`
	Subject string    `gorm:"column:subject;index"`
	Start   time.Time `gorm:"column:start"`
	Stop    time.Time `gorm:"column:stop"`
	AllDay  bool      `gorm:"column:all_day"`
}

func (calendarEventModel) TableName() string { return "calendar_events" }

func (r *CalendarRepository) Create(ctx context.Context, e *domain.CalendarEvent) error {
	m := calendarEventModel{Subject: e.Subject, Start: e.Start, Stop: e.Stop, AllDay: e.AllDay}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	return nil
}

// DeleteMatching removes every event keyed by (subject, start, stop).
func (r *CalendarRepository) DeleteMatching(ctx context.Context, subject string, start, stop time.Time) error {
	return r.db.WithContext(ctx).
		Where("subject = ? AND start = ? AND stop = ?", subject, start, stop).
		Delete(&calendarEventModel{}).Error
}

func (r *CalendarRepository) FindBySubject(ctx context.Context, subject string) ([]domain.CalendarEvent, error) {
	var rows []calendarEventModel
	if err := r.db.WithContext(ctx).Where("subject = ?", subject).Order("start").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.CalendarEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.CalendarEvent{ID: m.ID, Subject: m.Subject, Start: m.Start, Stop: m.Stop, AllDay: m.AllDay})
	}
	return out, nil
}
