package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/speedcraftlabs/gearstock-backend/pkg/migrate"
)

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_inventories.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventories",
		"CREATE TABLE IF NOT EXISTS variant_inventories",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"FOREIGN KEY (variant_id) REFERENCES product_variants(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"CHECK (reserved_quantity >= 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_inventories_product_id",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_variant_inventories_variant_id",
		"DROP TABLE IF EXISTS variant_inventories",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestInventoryLogMigrationEnforcesLedgerArithmetic(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_inventory_logs.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory log migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_logs",
		"CREATE TABLE IF NOT EXISTS variant_inventory_logs",
		"CHECK (quantity_after = quantity_before + quantity_change)",
		"'order_out'",
		"FOREIGN KEY (inventory_id) REFERENCES inventories(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS variant_inventory_logs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
