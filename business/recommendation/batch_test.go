package recommendation

import (
	"context"
	"testing"
)

func TestBatchGenerateIsolatesFailures(t *testing.T) {
	store := accessoriesStore()
	store.customers = []uint{1, 0, 2}
	svc := newTestService(store, testNow)

	results, err := svc.BatchGenerate(context.Background())
	if err != nil {
		t.Fatalf("BatchGenerate: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %+v", results)
	}

	for i, uid := range []uint{1, 0, 2} {
		if results[i].UserID != uid {
			t.Fatalf("result %d user = %d, want %d", i, results[i].UserID, uid)
		}
	}
	if results[1].Error == "" {
		t.Fatal("invalid user should report an error")
	}
	for _, i := range []int{0, 2} {
		if results[i].Error != "" || results[i].Count == 0 {
			t.Fatalf("result %d = %+v", i, results[i])
		}
	}
	if len(store.recosFor(1)) == 0 || len(store.recosFor(2)) == 0 {
		t.Fatal("recommendations not stored for valid users")
	}
}

func TestBatchGenerateNoCustomers(t *testing.T) {
	svc := newTestService(newMemStore(), testNow)

	results, err := svc.BatchGenerate(context.Background())
	if err != nil {
		t.Fatalf("BatchGenerate: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %+v", results)
	}
}
