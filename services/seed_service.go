package services

import (
	"context"
	"fmt"
	"time"

	"gin-shopcart/models"
	"gin-shopcart/repositories"

	"go.uber.org/zap"
)

type seedItem struct {
	name    string
	kind    string
	price   string
	details [][2]string
}

var demoCatalog = []seedItem{
	{"HP Spectre x360 14", "Laptop", "900$", [][2]string{{"Storage", "512gb"}, {"Processor", "i7-1165G7"}}},
	{"Dell XPS 15", "Laptop", "1400$", [][2]string{{"Graphics", "RTX 3050 Ti"}, {"Processor", "i7-12700H"}, {"Operating system", "Windows 98"}}},
	{"Google Pixel 7", "", "700$", nil},
	{"Logitech PRO X Superlight", "Mouse", "200$", [][2]string{{"Weight", "45g"}, {"Battery life", "16h"}}},
	{"No name psu", "", "30$", [][2]string{{"Efficiency", "80+ platinum"}, {"Wattage", "1200W"}}},
}

// SeedCatalog inserts the demo catalog when no items exist yet and reports how many items it created.
func SeedCatalog(ctx context.Context, items repositories.IItemRepository, details repositories.IDetailRepository) (int, error) {
	count, err := items.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		zap.L().Info("Catalog already populated, skipping seed", zap.Int64("items", count))
		return 0, nil
	}

	for _, seed := range demoCatalog {
		zap.L().Info("Creating item", zap.String("name", seed.name))
		item, err := items.Create(ctx, models.Item{
			Name:      seed.name,
			Type:      seed.kind,
			Price:     seed.price,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return 0, fmt.Errorf("seed item %q: %w", seed.name, err)
		}
		for _, d := range seed.details {
			if _, err := details.Create(ctx, item.ID, models.Detail{Name: d[0], Value: d[1]}); err != nil {
				return 0, fmt.Errorf("seed detail %q of %q: %w", d[0], seed.name, err)
			}
		}
	}
	return len(demoCatalog), nil
}
