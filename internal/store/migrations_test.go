package store

import (
	"encoding/json"
	"testing"

	"github.com/cole/shophours/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v1Blob(t *testing.T) map[string]any {
	t.Helper()
	blob := `{
		"clients": [{"id": "c1", "name": "ACME Garage", "rate": 100}],
		"entries": [
			{"id": "e1", "clientId": "c1", "taskName": "Brake service", "start": 1740903000000, "end": 1740908400000},
			{"id": "e2", "clientId": "c1", "taskName": "Oil change", "start": 1740989400000, "end": null}
		],
		"tasks": ["Brake service", "Oil change"],
		"active": {"entryId": "e2"}
	}`
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))
	return raw
}

func TestMigrate_FromV1(t *testing.T) {
	raw, err := migrate(v1Blob(t))
	require.NoError(t, err)

	assert.Equal(t, domain.SchemaVersion, raw["schemaVersion"])
	assert.Equal(t, []any{}, raw["jobs"])
	assert.Equal(t, []any{}, raw["charges"])
	assert.Equal(t, []any{}, raw["scheduledJobs"])
	assert.Equal(t, []any{}, raw["invoices"])

	// The pre-schema task list never survives
	_, hasTasks := raw["tasks"]
	assert.False(t, hasTasks)

	entries := raw["entries"].([]any)
	for _, e := range entries {
		assert.Equal(t, false, e.(map[string]any)["invoiced"])
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	once, err := migrate(v1Blob(t))
	require.NoError(t, err)
	onceJSON, err := json.Marshal(once)
	require.NoError(t, err)

	var reparsed map[string]any
	require.NoError(t, json.Unmarshal(onceJSON, &reparsed))
	twice, err := migrate(reparsed)
	require.NoError(t, err)
	twiceJSON, err := json.Marshal(twice)
	require.NoError(t, err)

	assert.JSONEq(t, string(onceJSON), string(twiceJSON))
}

func TestMigrate_ChargeDefaults(t *testing.T) {
	blob := `{
		"schemaVersion": 3,
		"clients": [],
		"entries": [],
		"jobs": [],
		"scheduledJobs": [],
		"invoices": [],
		"charges": [
			{"id": "ch1", "jobId": "j1", "clientId": "c1", "kind": "part", "description": "pads",
			 "quantity": 2, "unitCost": 35, "unitPrice": 50, "amountCached": 999},
			{"id": "ch2", "jobId": "j1", "clientId": "c1", "kind": "expense", "description": "disposal",
			 "quantity": 1, "unitCost": 15, "unitPrice": 15}
		]
	}`
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))

	migrated, err := migrate(raw)
	require.NoError(t, err)

	charges := migrated["charges"].([]any)
	part := charges[0].(map[string]any)
	assert.Equal(t, 100.0, part["amountCached"]) // stale cache recomputed
	assert.Equal(t, false, part["invoiced"])

	expense := charges[1].(map[string]any)
	assert.Equal(t, 15.0, expense["amountCached"])
	assert.Equal(t, domain.DefaultExpenseCategory, expense["category"])
}

func TestMigrate_SkipsAppliedSteps(t *testing.T) {
	// Walking from v3 runs only the 3->4 step
	blob := map[string]any{
		"schemaVersion": float64(3),
		"clients":       []any{},
		"entries":       []any{},
		"charges":       []any{},
	}
	migrated, err := migrate(blob)
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaVersion, migrated["schemaVersion"])
	_, hasScheduled := migrated["scheduledJobs"]
	assert.False(t, hasScheduled)
}

func TestMigrate_FutureVersion(t *testing.T) {
	blob := map[string]any{"schemaVersion": float64(domain.SchemaVersion + 1)}
	_, err := migrate(blob)
	assert.ErrorIs(t, err, ErrFutureSchema)
}
