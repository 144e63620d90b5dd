package store

import (
	"github.com/cole/shophours/internal/domain"
)

// migration upgrades a raw state map from `version` to `version+1`.
// Every step must be a no-op on already-migrated input, so a re-run over
// the same blob can never duplicate or destroy data.
type migration struct {
	version int
	apply   func(raw map[string]any)
}

var migrations = []migration{
	{version: 1, apply: migrateJobsAndCharges},
	{version: 2, apply: migrateInvoicing},
	{version: 3, apply: migrateChargeAmounts},
}

// migrate walks the registry strictly ascending from the stored version
// (absent means 1) to the current schema version. Blobs from a newer
// schema are refused, never trimmed down.
func migrate(raw map[string]any) (map[string]any, error) {
	version := 1
	if v, ok := raw["schemaVersion"].(float64); ok {
		version = int(v)
	}
	if version > domain.SchemaVersion {
		return nil, ErrFutureSchema
	}

	for _, m := range migrations {
		if m.version < version {
			continue
		}
		m.apply(raw)
	}
	raw["schemaVersion"] = domain.SchemaVersion
	return raw, nil
}

// 1 -> 2: introduce jobs and charges, drop the legacy tasks array.
// Pre-schema blobs carried a flat tasks list that nothing reads anymore;
// it must never round-trip through a save.
func migrateJobsAndCharges(raw map[string]any) {
	if _, ok := raw["jobs"]; !ok {
		raw["jobs"] = []any{}
	}
	if _, ok := raw["charges"]; !ok {
		raw["charges"] = []any{}
	}
	delete(raw, "tasks")
}

// 2 -> 3: introduce scheduling and invoice history, default the
// invoiced flag on entries that predate it
func migrateInvoicing(raw map[string]any) {
	if _, ok := raw["scheduledJobs"]; !ok {
		raw["scheduledJobs"] = []any{}
	}
	if _, ok := raw["invoices"]; !ok {
		raw["invoices"] = []any{}
	}
	entries, _ := raw["entries"].([]any)
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := entry["invoiced"]; !ok {
			entry["invoiced"] = false
		}
	}
}

// 3 -> 4: default the invoiced flag and expense category on charges and
// refresh amountCached. The recompute is deterministic from quantity and
// unitPrice, so re-running it is safe.
func migrateChargeAmounts(raw map[string]any) {
	charges, _ := raw["charges"].([]any)
	for _, c := range charges {
		charge, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := charge["invoiced"]; !ok {
			charge["invoiced"] = false
		}
		qty, _ := charge["quantity"].(float64)
		price, _ := charge["unitPrice"].(float64)
		charge["amountCached"] = qty * price
		if kind, _ := charge["kind"].(string); kind == string(domain.ChargeExpense) {
			if cat, _ := charge["category"].(string); cat == "" {
				charge["category"] = domain.DefaultExpenseCategory
			}
		}
	}
}
