package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"standsdir/internal/directory/models"
	id "standsdir/pkg/domain"
)

// Saver is the write side shared by the builder stores.
type Saver interface {
	Save(ctx context.Context, b *models.Builder) error
}

// LoadSeedFile reads a JSON array of loosely shaped builder documents.
func LoadSeedFile(path string) ([]*models.Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read builder seed %s: %w", path, err)
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse builder seed %s: %w", path, err)
	}

	builders := make([]*models.Builder, 0, len(records))
	for i, rec := range records {
		b, err := models.BuilderFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("builder seed record %d: %w", i, err)
		}
		builders = append(builders, b)
	}
	return builders, nil
}

// Seed saves builders in order. Builders without an ID get a random one;
// builders without a creation time get increasing timestamps so time-ordered
// stores keep the seed order.
func Seed(ctx context.Context, store Saver, builders []*models.Builder, now time.Time) error {
	for i, b := range builders {
		if b.ID.IsNil() {
			b.ID = id.NewBuilderID()
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		if err := store.Save(ctx, b); err != nil {
			return fmt.Errorf("seed builder %s: %w", b.ID, err)
		}
	}
	return nil
}
