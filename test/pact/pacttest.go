//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-tracker-api"
	ConsumerName = "ops-dashboard"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "a pending order exists"
	StateOrderMissing   = "no order with the requested id"
)

const (
	// ExistingOrderID is the fixed id seeded by the provider state handlers.
	ExistingOrderID = "018f2a6e-0000-7000-8000-000000000301"
	// MissingOrderID is never seeded.
	MissingOrderID = "018f2a6e-0000-7000-8000-000000000999"

	ExistingOrderNumber = "ORD-PACT01"
)

// ExampleCreatePayload provides stable request data for pact interactions.
func ExampleCreatePayload() map[string]any {
	return map[string]any{
		"customer_name": "Pact Customer",
		"product_name":  "Contract Widget",
		"quantity":      2,
		"price":         "29.99",
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
