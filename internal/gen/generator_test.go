package gen

import (
	"testing"
	"time"

	"storeseed/internal/models"
)

func TestUsersCount(t *testing.T) {
	g := New(0)

	for _, count := range []int{0, 1, 25} {
		users := g.Users(count)
		if len(users) != count {
			t.Errorf("Users(%d) returned %d records", count, len(users))
		}
	}
}

func TestUserEmailsUnique(t *testing.T) {
	g := New(0)

	users := g.Users(500)
	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if seen[u.Email] {
			t.Errorf("Duplicate email generated: %s", u.Email)
		}
		seen[u.Email] = true
	}
}

func TestUserFields(t *testing.T) {
	g := New(0)

	for _, u := range g.Users(50) {
		if u.Name == "" || u.Email == "" || u.City == "" {
			t.Errorf("User has empty fields: %+v", u)
		}

		signup, err := time.Parse("2006-01-02", u.SignupDate)
		if err != nil {
			t.Fatalf("Signup date %q is not YYYY-MM-DD: %v", u.SignupDate, err)
		}
		if signup.After(time.Now().AddDate(0, 0, 1)) {
			t.Errorf("Signup date %s is in the future", u.SignupDate)
		}
		if signup.Before(time.Now().AddDate(-2, 0, -2)) {
			t.Errorf("Signup date %s is older than two years", u.SignupDate)
		}

		fields := u.Fields()
		for _, key := range []string{"name", "email", "city", "signup_date"} {
			if _, ok := fields[key]; !ok {
				t.Errorf("User fields missing key %q", key)
			}
		}
	}
}

func TestProductConstraints(t *testing.T) {
	g := New(0)

	categories := make(map[string]bool)
	for _, c := range models.Categories {
		categories[c] = true
	}

	for _, p := range g.Products(200) {
		if !p.Price.IsPositive() {
			t.Errorf("Product price %s is not positive", p.Price)
		}
		if !p.Price.Equal(p.Price.Round(2)) {
			t.Errorf("Product price %s has more than 2 decimal places", p.Price)
		}
		if p.StockQuantity < 0 || p.StockQuantity > 250 {
			t.Errorf("Stock quantity %d out of range", p.StockQuantity)
		}
		if !categories[p.Category] {
			t.Errorf("Unknown category: %s", p.Category)
		}
		if p.Name == "" || p.Description == "" {
			t.Errorf("Product has empty fields: %+v", p)
		}
	}
}

func TestOrdersUsePools(t *testing.T) {
	g := New(0)

	userIDs := []int64{3, 7, 9}
	productIDs := []int64{11, 12}
	users := map[int64]bool{3: true, 7: true, 9: true}
	products := map[int64]bool{11: true, 12: true}

	statuses := make(map[string]bool)
	for _, s := range models.OrderStatuses {
		statuses[s] = true
	}

	orders := g.Orders(300, userIDs, productIDs)
	if len(orders) != 300 {
		t.Fatalf("Expected 300 orders, got %d", len(orders))
	}

	for _, o := range orders {
		if !users[o.UserID] {
			t.Errorf("Order references user id %d outside the pool", o.UserID)
		}
		if !products[o.ProductID] {
			t.Errorf("Order references product id %d outside the pool", o.ProductID)
		}
		if o.Quantity < 1 || o.Quantity > 8 {
			t.Errorf("Order quantity %d out of range", o.Quantity)
		}
		if !statuses[o.Status] {
			t.Errorf("Unknown order status: %s", o.Status)
		}
		if o.OrderDate.Location() != time.UTC {
			t.Errorf("Order date %v is not UTC", o.OrderDate)
		}
		if o.OrderDate.After(time.Now()) || o.OrderDate.Before(time.Now().AddDate(-1, 0, -1)) {
			t.Errorf("Order date %v outside the last year", o.OrderDate)
		}
	}
}

func TestOrdersEmptyPool(t *testing.T) {
	g := New(0)

	if orders := g.Orders(10, nil, []int64{1}); len(orders) != 0 {
		t.Errorf("Expected no orders with empty user pool, got %d", len(orders))
	}
	if orders := g.Orders(10, []int64{1}, nil); len(orders) != 0 {
		t.Errorf("Expected no orders with empty product pool, got %d", len(orders))
	}
}

func TestSeededRunsReproducible(t *testing.T) {
	first := New(42).Users(5)
	second := New(42).Users(5)

	for i := range first {
		if first[i].Email != second[i].Email || first[i].Name != second[i].Name || first[i].City != second[i].City {
			t.Errorf("Seeded run diverged at user %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
