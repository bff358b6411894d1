package handlers_test

import (
	"net/http"
	"testing"

	"tradenook/internal/domain"
)

func lamp() map[string]any {
	return map[string]any{
		"title":        "Desk Lamp",
		"description":  "Brass desk lamp, works fine",
		"price":        15,
		"imageUrl":     "/media/lamp.jpg",
		"category":     "Home & Garden",
		"condition":    "Good",
		"location":     "Riverside",
		"contactPhone": "555-010-2000",
	}
}

func TestCreatePaySoldDeleteFlow(t *testing.T) {
	app := newApp(t)
	jane := login(t, app, "jane@example.com")

	resp := call(t, app, "POST", "/api/v1/products", lamp(), jane)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var p domain.Product
	decode(t, resp, &p)
	if p.ID != "7" || p.SellerID != "2" || p.SellerName != "janedoe" || p.IsPaid || p.IsSold {
		t.Fatalf("unexpected listing %+v", p)
	}

	pay := call(t, app, "PUT", "/api/v1/products/7/pay", nil, jane)
	if pay.StatusCode != http.StatusOK {
		t.Fatalf("pay: %d", pay.StatusCode)
	}
	var paid struct {
		IsPaid  bool `json:"isPaid"`
		Receipt *struct {
			ID     string  `json:"id"`
			Amount float64 `json:"amount"`
		} `json:"receipt"`
	}
	decode(t, pay, &paid)
	if !paid.IsPaid || paid.Receipt == nil || paid.Receipt.ID == "" || paid.Receipt.Amount != 5.00 {
		t.Fatalf("unexpected payment %+v", paid)
	}

	// paying again charges nothing
	again := call(t, app, "PUT", "/api/v1/products/7/pay", nil, jane)
	var repaid map[string]any
	decode(t, again, &repaid)
	if _, ok := repaid["receipt"]; ok {
		t.Fatalf("second payment issued a receipt: %v", repaid)
	}

	john := login(t, app, "john@example.com")
	if resp := call(t, app, "PUT", "/api/v1/products/7/sold", nil, john); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-seller sold: expected 403, got %d", resp.StatusCode)
	}
	if resp := call(t, app, "PUT", "/api/v1/products/7/sold", nil, jane); resp.StatusCode != http.StatusOK {
		t.Fatalf("seller sold: %d", resp.StatusCode)
	}
	var got domain.Product
	decode(t, call(t, app, "GET", "/api/v1/products/7", nil, ""), &got)
	if !got.IsPaid || !got.IsSold {
		t.Fatalf("state not persisted: %+v", got)
	}

	if resp := call(t, app, "DELETE", "/api/v1/products/7", nil, jane); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	if resp := call(t, app, "DELETE", "/api/v1/products/7", nil, jane); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateRequiresSessionAndValidInput(t *testing.T) {
	app := newApp(t)

	if resp := call(t, app, "POST", "/api/v1/products", lamp(), ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("signed out: expected 401, got %d", resp.StatusCode)
	}

	john := login(t, app, "john@example.com")
	for field, v := range map[string]any{
		"condition": "Mint",
		"price":     -1,
		"title":     "",
		"category":  "Spaceships",
	} {
		in := lamp()
		in[field] = v
		resp := call(t, app, "POST", "/api/v1/products", in, john)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s=%v: expected 400, got %d", field, v, resp.StatusCode)
		}
	}

	var all []domain.Product
	decode(t, call(t, app, "GET", "/api/v1/products", nil, ""), &all)
	if len(all) != 6 {
		t.Fatalf("rejected listings changed the catalog: %d", len(all))
	}
}

func TestAdminDeletesAnyListing(t *testing.T) {
	app := newApp(t)
	admin := login(t, app, "admin@example.com")

	if resp := call(t, app, "DELETE", "/api/v1/products/3", nil, admin); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete: %d", resp.StatusCode)
	}
	var all []domain.Product
	decode(t, call(t, app, "GET", "/api/v1/products", nil, ""), &all)
	if len(all) != 5 {
		t.Fatalf("expected 5 listings, got %d", len(all))
	}
	for _, p := range all {
		if p.ID == "3" {
			t.Fatal("listing 3 still present")
		}
	}
}

func TestListProductsFilters(t *testing.T) {
	app := newApp(t)

	var electronics []domain.Product
	decode(t, call(t, app, "GET", "/api/v1/products?category=Electronics", nil, ""), &electronics)
	if len(electronics) != 2 {
		t.Fatalf("expected 2 electronics, got %d", len(electronics))
	}

	var all []domain.Product
	decode(t, call(t, app, "GET", "/api/v1/products?category=All&query=IPHONE", nil, ""), &all)
	if len(all) != 1 || all[0].ID != "1" {
		t.Fatalf("case-insensitive query failed: %+v", all)
	}

	var none []domain.Product
	decode(t, call(t, app, "GET", "/api/v1/products?category=Books", nil, ""), &none)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty array, got %v", none)
	}
}

func TestMyListings(t *testing.T) {
	app := newApp(t)
	if resp := call(t, app, "GET", "/api/v1/me/listings", nil, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	john := login(t, app, "john@example.com")
	var mine []domain.Product
	decode(t, call(t, app, "GET", "/api/v1/me/listings", nil, john), &mine)
	if len(mine) != 3 {
		t.Fatalf("expected 3 listings for john, got %d", len(mine))
	}
	for _, p := range mine {
		if p.SellerID != "1" {
			t.Fatalf("foreign listing %s", p.ID)
		}
	}
}

func TestCategories(t *testing.T) {
	app := newApp(t)
	var cats []domain.Category
	decode(t, call(t, app, "GET", "/api/v1/categories", nil, ""), &cats)
	if len(cats) != 8 || cats[0].Name != "Electronics" {
		t.Fatalf("unexpected categories %+v", cats)
	}
}
