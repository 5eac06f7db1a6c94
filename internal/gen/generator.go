package gen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"

	"storeseed/internal/models"
)

// Generator produces randomized store records. Each call generates fresh,
// independent data; only email uniqueness spans a single call.
type Generator struct {
	rand *rand.Rand
}

// New creates a Generator. A zero seed means a time-based seed (every run
// differs); a non-zero seed makes runs reproducible by routing both the
// generator's own randomness and faker's through it.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		faker.SetRandomSource(rand.NewSource(seed))
	}
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// Users generates count users with pairwise-distinct emails. Signup dates
// fall within the last two years.
func (g *Generator) Users(count int) []models.User {
	users := make([]models.User, 0, count)
	seen := make(map[string]struct{}, count)

	for i := 0; i < count; i++ {
		users = append(users, models.User{
			Name:       faker.Name(),
			Email:      g.uniqueEmail(seen, i),
			City:       faker.GetRealAddress().City,
			SignupDate: g.pastDate(2 * 365).Format("2006-01-02"),
		})
	}
	return users
}

// Products generates count products. Prices are strictly positive with two
// decimal places, stock quantities are non-negative.
func (g *Generator) Products(count int) []models.Product {
	products := make([]models.Product, 0, count)
	for i := 0; i < count; i++ {
		products = append(products, models.Product{
			Name:          capitalize(faker.Word()) + " " + capitalize(faker.Word()),
			Description:   faker.Paragraph(),
			Price:         g.price(),
			Category:      models.Categories[g.rand.Intn(len(models.Categories))],
			StockQuantity: g.rand.Intn(251),
		})
	}
	return products
}

// Orders generates count orders referencing ids drawn from the supplied
// pools. Returns an empty slice when either pool is empty; the caller
// treats that as a data-dependency failure, not an error.
func (g *Generator) Orders(count int, userIDs, productIDs []int64) []models.Order {
	if len(userIDs) == 0 || len(productIDs) == 0 {
		return nil
	}

	orders := make([]models.Order, 0, count)
	for i := 0; i < count; i++ {
		orders = append(orders, models.Order{
			UserID:    userIDs[g.rand.Intn(len(userIDs))],
			ProductID: productIDs[g.rand.Intn(len(productIDs))],
			Quantity:  g.rand.Intn(8) + 1,
			Status:    models.OrderStatuses[g.rand.Intn(len(models.OrderStatuses))],
			OrderDate: g.pastTime(365 * 24 * time.Hour),
		})
	}
	return orders
}

// uniqueEmail draws an email from faker and, on collision with one already
// generated in this call, re-derives the local part with a counter suffix
// until the address is free.
func (g *Generator) uniqueEmail(seen map[string]struct{}, n int) string {
	email := faker.Email()
	for attempt := 0; ; attempt++ {
		if _, dup := seen[email]; !dup {
			break
		}
		at := strings.Index(email, "@")
		email = fmt.Sprintf("%s%d.%d@%s", email[:at], n, attempt, email[at+1:])
	}
	seen[email] = struct{}{}
	return email
}

func (g *Generator) price() decimal.Decimal {
	p := decimal.NewFromFloat(1.0 + g.rand.Float64()*2499.0).Round(2)
	if !p.IsPositive() {
		p = decimal.NewFromFloat(0.01)
	}
	return p
}

func (g *Generator) pastDate(days int) time.Time {
	return time.Now().AddDate(0, 0, -g.rand.Intn(days+1))
}

func (g *Generator) pastTime(window time.Duration) time.Time {
	return time.Now().UTC().Add(-time.Duration(g.rand.Int63n(int64(window))))
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
