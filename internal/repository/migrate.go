package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this module owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&petCategoryModel{},
		&doctorModel{},
		&serviceModel{},
		&productModel{},
		&customerModel{},
		&petModel{},
		&bookingModel{},
		&serviceLineModel{},
		&productLineModel{},
		&calendarEventModel{},
		&ledgerPaymentModel{},
		&stockTransferModel{},
		&sequenceModel{},
	)
}
