package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "catalog-test", Level: zerolog.Disabled, Output: io.Discard})
}

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		VATPercent:           "19",
		PaintHourlyRate:      "85",
		BodyworkHourlyRate:   "95",
		MechanicalHourlyRate: "110",
		MiscHourlyRate:       "75",
	}
}

func openCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.CatalogEntry{}, &models.RateSettings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestEntriesServesDefaultsWithoutRepo(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, testLogger(), testPricingConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	entries := svc.Entries(context.Background())
	if len(entries) == 0 {
		t.Fatalf("expected built-in entries")
	}

	tires, ok := svc.Entry(context.Background(), enums.ServiceTires)
	if !ok {
		t.Fatalf("expected a tires entry")
	}
	if !tires.HasOperation(enums.OpMount) {
		t.Fatalf("tires entry should allow mounting, got %v", tires.Operations)
	}

	var hasTireType bool
	for _, field := range tires.Fields {
		if field.ID == "reifentyp" && field.Type == enums.FieldSelect {
			hasTireType = true
		}
	}
	if !hasTireType {
		t.Fatalf("tires schema must include the reifentyp select, got %v", tires.Fields)
	}
}

func TestRatesFallBackToConfig(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, testLogger(), testPricingConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rates := svc.Rates(context.Background())
	if rates.Paint.String() != "85" {
		t.Fatalf("expected configured paint rate 85, got %s", rates.Paint)
	}
	if rates.VATPercent.String() != "19" {
		t.Fatalf("expected configured VAT 19, got %s", rates.VATPercent)
	}
}

func TestNewServiceRejectsMalformedRates(t *testing.T) {
	t.Parallel()

	cfg := testPricingConfig()
	cfg.PaintHourlyRate = "not-a-number"

	if _, err := NewService(nil, testLogger(), cfg); err == nil {
		t.Fatalf("expected an error for a malformed rate")
	}
}

func TestEntriesLoadFromDatabase(t *testing.T) {
	conn := openCatalogDB(t)

	record := models.CatalogEntry{
		ServiceType: enums.ServiceTires,
		Label:       "Reifen",
		Parts:       pq.StringArray{"Reifen vorne links"},
		Operations:  pq.StringArray{"montieren", "not-an-operation"},
	}
	if err := conn.Create(&record).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	svc, err := NewService(NewRepository(conn), testLogger(), testPricingConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	entry, ok := svc.Entry(context.Background(), enums.ServiceTires)
	if !ok {
		t.Fatalf("expected the seeded entry")
	}
	if len(entry.Operations) != 1 || entry.Operations[0] != enums.OpMount {
		t.Fatalf("unknown operations must be skipped, got %v", entry.Operations)
	}
	if !entry.HasPart("Reifen vorne links") {
		t.Fatalf("expected seeded part, got %v", entry.Parts)
	}
}
