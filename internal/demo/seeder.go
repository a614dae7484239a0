package demo

import (
	"context"
	"time"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"

	"github.com/beacheats/beachsync/internal/models"
	"github.com/beacheats/beachsync/internal/orders"
)

var fake = faker.New()

// Seeder fills a resort's kitchen display with plausible sample orders for
// demos and training walkthroughs.
type Seeder struct {
	store *orders.Store
}

func NewSeeder(store *orders.Store) *Seeder {
	return &Seeder{store: store}
}

// Seed places n generated orders, oldest first, back-dated a few minutes
// apart so the list reads like a live service window and none of them trip
// the duplicate-suppression heuristic.
func (s *Seeder) Seed(ctx context.Context, n int) []models.Order {
	bar := progressbar.Default(int64(n), "seeding demo orders")
	placed := make([]models.Order, 0, n)
	start := time.Now().Add(-time.Duration(n) * 90 * time.Second)
	for i := 0; i < n; i++ {
		order := models.Order{
			Items: randomItems(),
			GuestInfo: models.GuestInfo{
				RoomNumber: fake.RandomStringElement([]string{"101", "204", "315", "422", "508", "611"}),
				LastName:   fake.Person().LastName(),
				Allergies:  randomAllergies(),
			},
			PlacedAt: start.Add(time.Duration(i) * 90 * time.Second),
		}
		placed = append(placed, s.store.Place(ctx, order))
		bar.Add(1)
	}
	return placed
}

func randomItems() []models.LineItem {
	count := fake.IntBetween(1, 3)
	items := make([]models.LineItem, 0, count)
	for i := 0; i < count; i++ {
		if fake.Bool() {
			items = append(items, models.LineItem{
				ID:      fake.UUID().V4(),
				Type:    "build-your-own",
				Protein: fake.RandomStringElement([]string{"chicken", "fish", "shrimp", "beef", "pork", "mushrooms"}),
				Format:  fake.RandomStringElement([]string{"tacos", "salad", "tlayuda", "burrito"}),
				Addons:  []string{fake.RandomStringElement([]string{"guacamole", "salsa-verde", "crema", "cheese"})},
			})
			continue
		}
		items = append(items, models.LineItem{
			ID:       fake.RandomStringElement([]string{"birria-tacos", "guacamole", "pescado-taco", "churros", "ensalada-costa"}),
			Type:     "menu-item",
			Category: fake.RandomStringElement([]string{"picaditos", "tacos", "ensaladas", "postres"}),
		})
	}
	return items
}

func randomAllergies() string {
	if fake.IntBetween(0, 3) > 0 {
		return ""
	}
	return fake.RandomStringElement([]string{"shellfish", "peanuts", "gluten", "dairy"})
}
