package repository

import (
	"context"

	"gorm.io/gorm"
)

// MediaRefs answers the reaper: which object keys are still pointed at by
// an attachment or an athlete photo.
type MediaRefs struct {
	DB *gorm.DB
}

func NewMediaRefs(db *gorm.DB) *MediaRefs { return &MediaRefs{DB: db} }

const refsChunk = 500

func (r *MediaRefs) ReferencedKeys(ctx context.Context, keys []string) (map[string]bool, error) {
	out := make(map[string]bool, len(keys))
	for start := 0; start < len(keys); start += refsChunk {
		end := min(start+refsChunk, len(keys))
		chunk := keys[start:end]

		var found []string
		err := r.DB.WithContext(ctx).Raw(`
			SELECT object_key FROM allegati WHERE object_key IN ?
			UNION
			SELECT foto_object_key FROM anagrafica WHERE foto_object_key IN ?`,
			chunk, chunk).Scan(&found).Error
		if err != nil {
			return nil, err
		}
		for _, k := range found {
			out[k] = true
		}
	}
	return out, nil
}
