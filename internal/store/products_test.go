package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aldeenj/veilflow/internal/db"
	"github.com/aldeenj/veilflow/internal/model"
)

func testProduct(name, category, fabric, sku string) *model.Product {
	return &model.Product{
		Name:     name,
		Price:    decimal.NewFromInt(120),
		Category: category,
		Fabric:   fabric,
		SKU:      sku,
	}
}

func TestAddAndGetProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, err := AddProduct(ctx, database, testProduct("عباية سوداء", "C", "S", "C2500001-S"))
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if product.ID == "" {
		t.Error("expected generated id")
	}
	if product.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
	if product.SKU != "C2500001-S" {
		t.Errorf("expected sku C2500001-S, got %q", product.SKU)
	}
	if !product.Price.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected price 120, got %s", product.Price)
	}

	got, err := GetProduct(ctx, database, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got == nil || got.Name != "عباية سوداء" {
		t.Errorf("unexpected product: %+v", got)
	}
}

func TestGetProductMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetProduct(context.Background(), database, "no-such-id")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing product, got %+v", got)
	}
}

func TestListProductsCreationOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddProduct(ctx, database, testProduct("First", "V", "F", "V2500001-F"))
	AddProduct(ctx, database, testProduct("Second", "C", "C", "C2500001-C"))
	AddProduct(ctx, database, testProduct("Third", "A", "M", "A2500001-M"))

	products, err := ListProducts(ctx, database)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	for i, name := range []string{"First", "Second", "Third"} {
		if products[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, products[i].Name)
		}
	}
}

func TestSearchProducts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddProduct(ctx, database, testProduct("عباية سوداء", "C", "S", "C2500001-S"))
	AddProduct(ctx, database, testProduct("شال حرير", "A", "S", "A2500001-S"))

	byName, err := SearchProducts(ctx, database, "عباية")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "عباية سوداء" {
		t.Errorf("expected one match by name, got %+v", byName)
	}

	bySKU, err := SearchProducts(ctx, database, "A25")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(bySKU) != 1 || bySKU[0].SKU != "A2500001-S" {
		t.Errorf("expected one match by sku, got %+v", bySKU)
	}

	none, _ := SearchProducts(ctx, database, "zzz")
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestUpdateProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := AddProduct(ctx, database, testProduct("Old", "C", "S", "C2500001-S"))

	updated, err := UpdateProduct(ctx, database, product.ID, "New", decimal.NewFromInt(99), "C", "C")
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "New" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
	if !updated.Price.Equal(decimal.NewFromInt(99)) {
		t.Errorf("expected price 99, got %s", updated.Price)
	}
	if updated.SKU != "C2500001-S" {
		t.Errorf("sku must be immutable, got %q", updated.SKU)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Errorf("expected updatedAt >= createdAt")
	}
}

func TestUpdateProductMissing(t *testing.T) {
	database := db.NewTestDB(t)

	updated, err := UpdateProduct(context.Background(), database, "no-such-id", "X", decimal.Zero, "C", "S")
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for missing product, got %+v", updated)
	}
}

func TestDeleteProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := AddProduct(ctx, database, testProduct("Delete Me", "C", "S", "C2500001-S"))
	if err := DeleteProduct(ctx, database, product.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	products, _ := ListProducts(ctx, database)
	if len(products) != 0 {
		t.Errorf("expected 0 products after delete, got %d", len(products))
	}
}

func TestProductsCreatedBetween(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddProduct(ctx, database, testProduct("Now", "C", "S", "C2500001-S"))

	now := time.Now()
	within, err := ProductsCreatedBetween(ctx, database, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ProductsCreatedBetween: %v", err)
	}
	if len(within) != 1 {
		t.Errorf("expected 1 product in range, got %d", len(within))
	}

	past, _ := ProductsCreatedBetween(ctx, database, now.Add(-2*time.Hour), now.Add(-time.Hour))
	if len(past) != 0 {
		t.Errorf("expected 0 products in past range, got %d", len(past))
	}

	thisMonth, err := ProductsThisMonth(ctx, database)
	if err != nil {
		t.Fatalf("ProductsThisMonth: %v", err)
	}
	if len(thisMonth) != 1 {
		t.Errorf("expected 1 product this month, got %d", len(thisMonth))
	}
}

func TestCountProducts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	count, err := CountProducts(ctx, database)
	if err != nil {
		t.Fatalf("CountProducts: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	AddProduct(ctx, database, testProduct("One", "C", "S", "C2500001-S"))
	count, _ = CountProducts(ctx, database)
	if count != 1 {
		t.Errorf("expected 1, got %d", count)
	}
}

func TestDecimalPriceRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p := testProduct("Fraction", "S", "P", "S2500001-P")
	p.Price = decimal.RequireFromString("120.50")
	created, err := AddProduct(ctx, database, p)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if created.Price.String() != "120.5" {
		t.Errorf("expected 120.5, got %s", created.Price)
	}
}
