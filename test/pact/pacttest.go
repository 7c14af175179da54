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
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateEmptyCart    = "session pact-shopper has an empty cart"
	StateCartWithTee  = "session pact-shopper has two tees in the cart"
	StateNoCart       = "session pact-empty never added products"
	StateOrderMissing = "no order ORD-20240101-000000 exists"
)

const (
	SessionID          = "pact-shopper"
	EmptySessionID     = "pact-empty"
	MissingOrderNumber = "ORD-20240101-000000"

	TeeProductID int64 = 101
	TeeQuantity        = 2
)

const (
	exampleTeeName  = "Pact Basic Tee"
	exampleTeePrice = "49.90"
	exampleImageURL = "https://example.pact/products/tee.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
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

// ExampleProductPayload provides stable product data for cart interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":       TeeProductID,
		"name":     exampleTeeName,
		"price":    exampleTeePrice,
		"imageUrl": exampleImageURL,
		"size":     "M",
		"color":    "black",
	}
}

// ExampleAddToCartPayload wraps the example product with its quantity.
func ExampleAddToCartPayload() map[string]any {
	return map[string]any{
		"product":  ExampleProductPayload(),
		"quantity": TeeQuantity,
	}
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
