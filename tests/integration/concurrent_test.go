package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/adapter/repository/postgres"
	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
	"github.com/ysonawan/duebook/tests/testutil"
)

func TestConcurrentPostings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC := newLedgerUseCase(testDB)
	customerRepo := postgres.NewCustomerRepository(testDB.Pool)
	entryRepo := postgres.NewEntryRepository(testDB.Pool)

	shop := testDB.CreateTestShop(ctx, "corner store")
	customer := testDB.CreateTestCustomer(ctx, shop.ID, "asha")

	const workers = 20
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := ledgerUC.PostEntry(ctx, usecase.PostEntryInput{
				CustomerID: customer.ID,
				ShopID:     shop.ID,
				Type:       domain.EntryTypeBaki,
				Amount:     amount,
			})
			if err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent posting failed: %v", err)
	}

	stored, err := customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("failed to load customer: %v", err)
	}

	expected := amount.Mul(decimal.NewFromInt(workers))
	if !stored.CurrentBalance.Equal(expected) {
		t.Errorf("expected balance %s after %d postings, got %s", expected, workers, stored.CurrentBalance)
	}

	// Every snapshot must be a distinct multiple of the amount: the customer
	// row lock serializes the postings.
	entries, err := entryRepo.ListAll(ctx, usecase.EntryFilter{ShopID: shop.ID})
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != workers {
		t.Fatalf("expected %d entries, got %d", workers, len(entries))
	}

	seen := make(map[string]bool, workers)
	for _, e := range entries {
		key := e.BalanceAfter.String()
		if seen[key] {
			t.Errorf("duplicate balance snapshot %s", key)
		}
		seen[key] = true

		if !e.BalanceAfter.Mod(amount).IsZero() {
			t.Errorf("snapshot %s is not a multiple of %s", e.BalanceAfter, amount)
		}
	}
}

func TestConcurrentReversals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC := newLedgerUseCase(testDB)
	customerRepo := postgres.NewCustomerRepository(testDB.Pool)

	shop := testDB.CreateTestShop(ctx, "corner store")
	customer := testDB.CreateTestCustomer(ctx, shop.ID, "asha")

	original, err := ledgerUC.PostEntry(ctx, usecase.PostEntryInput{
		CustomerID: customer.ID,
		ShopID:     shop.ID,
		Type:       domain.EntryTypeBaki,
		Amount:     decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("failed to post entry: %v", err)
	}

	const attempts = 5

	var wg sync.WaitGroup
	var succeeded atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := ledgerUC.ReverseEntry(ctx, usecase.ReverseEntryInput{EntryID: original.ID}); err == nil {
				succeeded.Add(1)
			}
		}()
	}

	wg.Wait()

	if got := succeeded.Load(); got != 1 {
		t.Errorf("expected exactly one successful reversal, got %d", got)
	}

	stored, err := customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("failed to load customer: %v", err)
	}
	if !stored.CurrentBalance.Equal(decimal.Zero) {
		t.Errorf("expected balance 0 after single reversal, got %s", stored.CurrentBalance)
	}
}
