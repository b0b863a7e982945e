package service

import (
	"errors"
	"testing"
	"time"
)

// seedSaleWithItems creates a finalized sale on the given date.
func seedSaleWithItems(t *testing.T, sales *Sales, customerID uint, date time.Time, items map[uint]int64) {
	t.Helper()
	sale, err := sales.Create(customerID, date)
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}
	for productID, qty := range items {
		if _, err := sales.AddItem(sale.ID, productID, qty, nil); err != nil {
			t.Fatalf("seed item: %v", err)
		}
	}
	if _, err := sales.Finalize(sale.ID); err != nil {
		t.Fatalf("seed finalize: %v", err)
	}
}

func TestSummary_AllTime(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	reports := NewReports(db)

	customer := createTestCustomer(t, db, "Asha", "1")
	soap := createTestProduct(t, db, "Soap", 500, 100)

	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-01"), map[uint]int64{soap.ID: 2}) // 10.00
	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-05"), map[uint]int64{soap.ID: 1}) // 5.00

	summary, err := reports.Summary(nil, nil)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Count != 2 {
		t.Errorf("sales count = %d, want 2", summary.Count)
	}
	if summary.RevenueCent != 1500 {
		t.Errorf("revenue = %d, want 1500", summary.RevenueCent)
	}
}

func TestSummary_DateRangeInclusive(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	reports := NewReports(db)

	customer := createTestCustomer(t, db, "Asha", "1")
	soap := createTestProduct(t, db, "Soap", 500, 100)

	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-01"), map[uint]int64{soap.ID: 1})
	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-10"), map[uint]int64{soap.ID: 1})
	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-20"), map[uint]int64{soap.ID: 1})

	start := mustDate(t, "2025-03-01")
	end := mustDate(t, "2025-03-10")
	summary, err := reports.Summary(&start, &end)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	// both endpoints count
	if summary.Count != 2 {
		t.Errorf("sales in range = %d, want 2", summary.Count)
	}
	if summary.RevenueCent != 1000 {
		t.Errorf("revenue in range = %d, want 1000", summary.RevenueCent)
	}
}

func TestSummary_RejectsReversedRange(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReports(db)

	start := mustDate(t, "2025-03-10")
	end := mustDate(t, "2025-03-01")
	_, err := reports.Summary(&start, &end)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Summary(start > end) error = %v, want ErrValidation", err)
	}
}

func TestSummary_Empty(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReports(db)

	summary, err := reports.Summary(nil, nil)
	if err != nil {
		t.Fatalf("Summary on empty store failed: %v", err)
	}
	if summary.Count != 0 || summary.RevenueCent != 0 {
		t.Errorf("empty summary = %+v, want zeros", summary)
	}
}

func TestTopProducts_OrderAndTies(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	reports := NewReports(db)

	customer := createTestCustomer(t, db, "Asha", "1")
	soap := createTestProduct(t, db, "Soap", 100, 100)
	brush := createTestProduct(t, db, "Brush", 100, 100)
	towel := createTestProduct(t, db, "Towel", 100, 100)

	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-01"),
		map[uint]int64{soap.ID: 5, brush.ID: 2})
	seedSaleWithItems(t, sales, customer.ID, mustDate(t, "2025-03-02"),
		map[uint]int64{towel.ID: 2, soap.ID: 1})

	rows, err := reports.TopProducts(10)
	if err != nil {
		t.Fatalf("TopProducts failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("TopProducts returned %d rows, want 3", len(rows))
	}

	// soap 6, then brush and towel tied at 2 -> lower product id first
	if rows[0].ProductID != soap.ID || rows[0].UnitsSold != 6 {
		t.Errorf("rows[0] = %+v, want soap with 6 units", rows[0])
	}
	if rows[1].ProductID != brush.ID || rows[2].ProductID != towel.ID {
		t.Errorf("tie order = %d then %d, want %d then %d",
			rows[1].ProductID, rows[2].ProductID, brush.ID, towel.ID)
	}

	// limit trims the tail
	rows, _ = reports.TopProducts(1)
	if len(rows) != 1 || rows[0].ProductID != soap.ID {
		t.Errorf("TopProducts(1) = %+v, want just soap", rows)
	}
}

func TestTopProducts_RejectsBadLimit(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReports(db)

	if _, err := reports.TopProducts(0); !errors.Is(err, ErrValidation) {
		t.Errorf("TopProducts(0) error = %v, want ErrValidation", err)
	}
}

func TestLowStock_ThresholdBoundary(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReports(db)

	createTestProduct(t, db, "Plenty", 100, 50)
	exactly := createTestProduct(t, db, "Exactly", 100, 10)
	low := createTestProduct(t, db, "Low", 100, 3)
	lower := createTestProduct(t, db, "Lower", 100, 1)

	products, err := reports.LowStock(10)
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}

	// strictly below the threshold, scarcest first
	if len(products) != 2 {
		t.Fatalf("LowStock returned %d products, want 2", len(products))
	}
	if products[0].ID != lower.ID || products[1].ID != low.ID {
		t.Errorf("low stock order = %d, %d; want %d, %d",
			products[0].ID, products[1].ID, lower.ID, low.ID)
	}
	for _, p := range products {
		if p.ID == exactly.ID {
			t.Error("product at exactly the threshold must not be listed")
		}
	}
}

func TestLowStock_RejectsBadThreshold(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReports(db)

	if _, err := reports.LowStock(0); !errors.Is(err, ErrValidation) {
		t.Errorf("LowStock(0) error = %v, want ErrValidation", err)
	}
}

func TestCustomerHistory(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	reports := NewReports(db)

	asha := createTestCustomer(t, db, "Asha", "1")
	bala := createTestCustomer(t, db, "Bala", "2")
	soap := createTestProduct(t, db, "Soap", 500, 100)

	seedSaleWithItems(t, sales, asha.ID, mustDate(t, "2025-03-01"), map[uint]int64{soap.ID: 1}) // 5.00
	seedSaleWithItems(t, sales, asha.ID, mustDate(t, "2025-03-09"), map[uint]int64{soap.ID: 2}) // 10.00
	seedSaleWithItems(t, sales, bala.ID, mustDate(t, "2025-03-05"), map[uint]int64{soap.ID: 4})

	history, err := reports.CustomerHistory(asha.ID)
	if err != nil {
		t.Fatalf("CustomerHistory failed: %v", err)
	}

	if len(history.Sales) != 2 {
		t.Fatalf("history has %d sales, want 2", len(history.Sales))
	}
	// newest first
	if !history.Sales[0].Date.After(history.Sales[1].Date) {
		t.Errorf("history not newest-first: %v then %v",
			history.Sales[0].Date, history.Sales[1].Date)
	}
	if history.TotalCent != 1500 {
		t.Errorf("history total = %d, want 1500", history.TotalCent)
	}
}

func TestCustomerHistory_UnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReports(db)

	_, err := reports.CustomerHistory(9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("CustomerHistory unknown customer error = %v, want ErrNotFound", err)
	}
}
