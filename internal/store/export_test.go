package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aldeenj/veilflow/internal/db"
	"github.com/aldeenj/veilflow/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	NextSequence(ctx, database, "C", 2025)
	AddProduct(ctx, database, testProduct("عباية سوداء", "C", "S", "C2500001-S"))
	UpdateSettings(ctx, database, model.Settings{ShopName: "فيل فلو", FontSize: intPtr(12)})
	RecordPrint(ctx, database, 3)

	snapshot, err := Export(ctx, database)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Importing a store's own export leaves it observably unchanged.
	if err := Import(ctx, database, raw); err != nil {
		t.Fatalf("Import: %v", err)
	}

	products, _ := ListProducts(ctx, database)
	if len(products) != 1 || products[0].SKU != "C2500001-S" {
		t.Errorf("unexpected products after round trip: %+v", products)
	}
	sequences, _ := GetSequences(ctx, database)
	if sequences["C_2025"] != 1 {
		t.Errorf("expected C_2025 == 1, got %d", sequences["C_2025"])
	}
	settings, _ := GetSettings(ctx, database)
	if settings.ShopName != "فيل فلو" {
		t.Errorf("expected shop name preserved, got %q", settings.ShopName)
	}
	stats, _ := GetStats(ctx, database)
	if stats.TotalPrints != 3 {
		t.Errorf("expected totalPrints 3, got %d", stats.TotalPrints)
	}
}

func TestImportPartialSnapshot(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddProduct(ctx, database, testProduct("Keep Me", "C", "S", "C2500001-S"))

	// Only sequences present: products must be left untouched.
	payload := []byte(`{"sequences": {"A_2024": 7}, "exportDate": "2025-01-01T00:00:00Z"}`)
	if err := Import(ctx, database, payload); err != nil {
		t.Fatalf("Import: %v", err)
	}

	products, _ := ListProducts(ctx, database)
	if len(products) != 1 {
		t.Errorf("partial import must not touch products, got %d", len(products))
	}
	sequences, _ := GetSequences(ctx, database)
	if sequences["A_2024"] != 7 {
		t.Errorf("expected imported counter 7, got %d", sequences["A_2024"])
	}
}

func TestImportMalformedJSON(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddProduct(ctx, database, testProduct("Keep Me", "C", "S", "C2500001-S"))

	err := Import(ctx, database, []byte(`{"products": [`))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}

	products, _ := ListProducts(ctx, database)
	if len(products) != 1 {
		t.Errorf("failed import must leave the store unchanged, got %d products", len(products))
	}
}

func TestExportImportPreservesLogo(t *testing.T) {
	source := db.NewTestDB(t)
	target := db.NewTestDB(t)
	ctx := context.Background()

	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	if err := SetLogo(ctx, source, payload, "image/png"); err != nil {
		t.Fatalf("SetLogo: %v", err)
	}

	snapshot, err := Export(ctx, source)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if snapshot.Logo == nil {
		t.Fatal("expected snapshot to carry the logo")
	}
	raw, _ := json.Marshal(snapshot)

	if err := Import(ctx, target, raw); err != nil {
		t.Fatalf("Import: %v", err)
	}

	image, mime, err := GetLogo(ctx, target)
	if err != nil {
		t.Fatalf("GetLogo: %v", err)
	}
	if string(image) != string(payload) || mime != "image/png" {
		t.Errorf("logo did not survive the restore: %d bytes, %q", len(image), mime)
	}
}

func TestExportWithoutLogoOmitsKey(t *testing.T) {
	database := db.NewTestDB(t)

	snapshot, err := Export(context.Background(), database)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if snapshot.Logo != nil {
		t.Errorf("expected no logo key for a store without one, got %+v", snapshot.Logo)
	}
}

func TestImportNegativeCounter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	NextSequence(ctx, database, "C", 2025)

	payload := []byte(`{"sequences": {"C_2025": -3}, "exportDate": "2025-01-01T00:00:00Z"}`)
	err := Import(ctx, database, payload)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for negative counter, got %v", err)
	}

	sequences, _ := GetSequences(ctx, database)
	if sequences["C_2025"] != 1 {
		t.Errorf("rejected import must leave counters unchanged, got %d", sequences["C_2025"])
	}
}

func TestImportBadSequenceKey(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddProduct(ctx, database, testProduct("Keep Me", "C", "S", "C2500001-S"))

	payload := []byte(`{"products": [], "sequences": {"notakey": 3}, "exportDate": "2025-01-01T00:00:00Z"}`)
	err := Import(ctx, database, payload)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for bad sequence key, got %v", err)
	}

	// The products key was present but nothing may have been applied.
	products, _ := ListProducts(ctx, database)
	if len(products) != 1 {
		t.Errorf("rejected import must be all-or-nothing, got %d products", len(products))
	}
}

func TestReset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	NextSequence(ctx, database, "C", 2025)
	AddProduct(ctx, database, testProduct("Gone", "C", "S", "C2500001-S"))
	UpdateSettings(ctx, database, model.Settings{ShopName: "Gone"})
	SetLogo(ctx, database, []byte("logo"), "image/png")
	RecordPrint(ctx, database, 5)

	if err := Reset(ctx, database); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	products, _ := ListProducts(ctx, database)
	if len(products) != 0 {
		t.Errorf("expected no products, got %d", len(products))
	}
	sequences, _ := GetSequences(ctx, database)
	if len(sequences) != 0 {
		t.Errorf("expected no counters, got %v", sequences)
	}
	settings, _ := GetSettings(ctx, database)
	if settings.ShopName != "" {
		t.Errorf("expected cleared settings, got %+v", settings)
	}
	hasLogo, _ := HasLogo(ctx, database)
	if hasLogo {
		t.Error("expected logo removed")
	}
	stats, _ := GetStats(ctx, database)
	if stats.TotalPrints != 0 || stats.TodayPrints != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}
