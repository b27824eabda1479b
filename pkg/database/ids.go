package database

import (
	"context"

	"gorm.io/gorm"
)

// MissingIDs returns the ids with no row in model's table, in input order and
// without duplicates.
func MissingIDs(ctx context.Context, db *gorm.DB, model any, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return difference(ids, found), nil
}

func difference(want, found []int64) []int64 {
	seen := make(map[int64]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
			seen[id] = struct{}{}
		}
	}
	return missing
}
