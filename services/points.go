package services

import (
	"fmt"

	"recycle-rewards-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// creditPoints is the only code path that changes a user's balance. It must be
// called inside a transaction.
//
// The audit row is inserted first with ON CONFLICT DO NOTHING on
// (source, reference_id); if nothing was inserted the credit was already
// applied and credited is false. The balance itself is bumped with a single
// UPDATE so concurrent credits to the same row serialize in the store.
func creditPoints(tx *gorm.DB, userID string, source models.PointsSource, referenceID string, amount int64) (credited bool, err error) {
	entry := models.PointsEntry{
		UserID:      userID,
		Source:      source,
		ReferenceID: referenceID,
		Amount:      amount,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		return false, fmt.Errorf("insert points entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	res = tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return false, fmt.Errorf("update user points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return true, nil
}
