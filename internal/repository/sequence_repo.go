package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// SequenceRepository hands out monotonically increasing values per named
// counter. The increment runs as a single UPDATE inside a transaction, which
// removes the read-max-then-increment race the legacy identifier generation
// had.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

type sequenceModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value int64  `gorm:"column:value"`
}

func (sequenceModel) TableName() string { return "sequences" }

const (
	SequenceBooking = "booking"
	SequencePet     = "pet"
)

func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&sequenceModel{}).Where("name = ?", name).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&sequenceModel{Name: name, Value: 1}).Error; err != nil {
				return err
			}
			next = 1
			return nil
		}
		var row sequenceModel
		if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
			return err
		}
		next = row.Value
		return nil
	})
	return next, err
}

// EnsureAtLeast raises the counter to floor if it is behind, so sequences
// seeded from legacy max-suffix scans never hand out a taken identifier.
func (r *SequenceRepository) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row sequenceModel
		err := tx.Where("name = ?", name).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&sequenceModel{Name: name, Value: floor}).Error
		}
		if err != nil {
			return err
		}
		if row.Value >= floor {
			return nil
		}
		return tx.Model(&sequenceModel{}).Where("name = ?", name).Update("value", floor).Error
	})
}

// FormatIdentifier renders a sequence value as PREFIX_NNNNNN.
func FormatIdentifier(prefix string, n int64) string {
	return fmt.Sprintf("%s_%06d", prefix, n)
}

func parseSuffix(identifier string) (int64, error) {
	i := strings.LastIndex(identifier, "_")
	if i < 0 || i == len(identifier)-1 {
		return 0, fmt.Errorf("malformed identifier %q", identifier)
	}
	return strconv.ParseInt(identifier[i+1:], 10, 64)
}
