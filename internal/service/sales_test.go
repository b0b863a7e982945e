package service

import (
	"errors"
	"testing"

	"smart-billing/internal/models"
)

func TestCreateSale_StartsOpenWithZeroTotal(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")

	sale, err := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if sale.TotalCent != 0 {
		t.Errorf("new sale TotalCent = %d, want 0", sale.TotalCent)
	}
	if sale.Status != models.SaleStatusOpen {
		t.Errorf("new sale Status = %q, want %q", sale.Status, models.SaleStatusOpen)
	}
}

func TestCreateSale_UnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)

	_, err := sales.Create(9999, mustDate(t, "2025-03-01"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Create with unknown customer error = %v, want ErrNotFound", err)
	}
}

func TestAddItem_DecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 250, 10)

	sale, err := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := sales.AddItem(sale.ID, product.ID, 3, nil); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Quantity != 7 {
		t.Errorf("product quantity after sale = %d, want 7", got.Quantity)
	}
}

func TestAddItem_SnapshotsCatalogPrice(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 250, 10)

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	item, err := sales.AddItem(sale.ID, product.ID, 2, nil)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.PriceCent != 250 {
		t.Fatalf("item PriceCent = %d, want catalog price 250", item.PriceCent)
	}

	// a later catalog price change must not touch the recorded line
	if err := db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price_cent", 999).Error; err != nil {
		t.Fatalf("update product price: %v", err)
	}

	var got models.SaleItem
	if err := db.First(&got, item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if got.PriceCent != 250 {
		t.Errorf("item PriceCent after catalog change = %d, want 250", got.PriceCent)
	}
}

func TestAddItem_PriceOverride(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 250, 10)

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))

	discounted := int64(200)
	item, err := sales.AddItem(sale.ID, product.ID, 1, &discounted)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.PriceCent != 200 {
		t.Errorf("item PriceCent = %d, want override 200", item.PriceCent)
	}
}

func TestAddItem_RejectsInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 250, 2)

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))

	_, err := sales.AddItem(sale.ID, product.ID, 3, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("AddItem beyond stock error = %v, want ErrValidation", err)
	}

	// no partial write: stock untouched, no line recorded
	var got models.Product
	db.First(&got, product.ID)
	if got.Quantity != 2 {
		t.Errorf("product quantity after rejected sale = %d, want 2", got.Quantity)
	}
	var itemCount int64
	db.Model(&models.SaleItem{}).Where("sale_id = ?", sale.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("sale item count after rejected sale = %d, want 0", itemCount)
	}
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 250, 10)
	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))

	for _, qty := range []int64{0, -1} {
		if _, err := sales.AddItem(sale.ID, product.ID, qty, nil); !errors.Is(err, ErrValidation) {
			t.Errorf("AddItem(qty=%d) error = %v, want ErrValidation", qty, err)
		}
	}
}

func TestAddItem_RejectsFinalizedSale(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 250, 10)

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	if _, err := sales.Finalize(sale.ID); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	_, err := sales.AddItem(sale.ID, product.ID, 1, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("AddItem on finalized sale error = %v, want ErrValidation", err)
	}
}

func TestFinalize_SumsLineTotals(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	soap := createTestProduct(t, db, "Soap", 500, 10)   // 5.00
	brush := createTestProduct(t, db, "Brush", 350, 10) // 3.50

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	if _, err := sales.AddItem(sale.ID, soap.ID, 2, nil); err != nil {
		t.Fatalf("AddItem soap: %v", err)
	}
	if _, err := sales.AddItem(sale.ID, brush.ID, 1, nil); err != nil {
		t.Fatalf("AddItem brush: %v", err)
	}

	got, err := sales.Finalize(sale.ID)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	// 2 x 5.00 + 1 x 3.50 = 13.50
	if got.TotalCent != 1350 {
		t.Errorf("finalized TotalCent = %d, want 1350", got.TotalCent)
	}
	if got.Status != models.SaleStatusFinalized {
		t.Errorf("finalized Status = %q, want %q", got.Status, models.SaleStatusFinalized)
	}
}

func TestFinalize_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	product := createTestProduct(t, db, "Soap", 500, 10)

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	sales.AddItem(sale.ID, product.ID, 2, nil)

	first, err := sales.Finalize(sale.ID)
	if err != nil {
		t.Fatalf("first Finalize failed: %v", err)
	}
	second, err := sales.Finalize(sale.ID)
	if err != nil {
		t.Fatalf("second Finalize failed: %v", err)
	}
	if first.TotalCent != second.TotalCent {
		t.Errorf("Finalize not idempotent: %d then %d", first.TotalCent, second.TotalCent)
	}
}

func TestFinalize_UnknownSale(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)

	_, err := sales.Finalize(4242)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Finalize unknown sale error = %v, want ErrNotFound", err)
	}
}

func TestBill_ZeroItems(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))

	bill, err := sales.Bill(sale.ID)
	if err != nil {
		t.Fatalf("Bill on empty sale failed: %v", err)
	}
	if len(bill.Lines) != 0 {
		t.Errorf("empty sale bill has %d lines, want 0", len(bill.Lines))
	}
	if bill.TotalCent != 0 {
		t.Errorf("empty sale bill total = %d, want 0", bill.TotalCent)
	}
	if bill.CustomerName != "Asha" {
		t.Errorf("bill customer = %q, want Asha", bill.CustomerName)
	}
}

func TestBill_LinesInInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)
	customer := createTestCustomer(t, db, "Asha", "asha@example.com")
	soap := createTestProduct(t, db, "Soap", 500, 10)
	brush := createTestProduct(t, db, "Brush", 350, 10)

	sale, _ := sales.Create(customer.ID, mustDate(t, "2025-03-01"))
	sales.AddItem(sale.ID, brush.ID, 1, nil)
	sales.AddItem(sale.ID, soap.ID, 2, nil)
	sales.Finalize(sale.ID)

	bill, err := sales.Bill(sale.ID)
	if err != nil {
		t.Fatalf("Bill failed: %v", err)
	}

	if len(bill.Lines) != 2 {
		t.Fatalf("bill has %d lines, want 2", len(bill.Lines))
	}
	if bill.Lines[0].ProductName != "Brush" || bill.Lines[1].ProductName != "Soap" {
		t.Errorf("bill lines out of order: %q then %q",
			bill.Lines[0].ProductName, bill.Lines[1].ProductName)
	}
	if bill.Lines[1].TotalCent != 1000 {
		t.Errorf("soap line total = %d, want 1000", bill.Lines[1].TotalCent)
	}
	if bill.TotalCent != 1350 {
		t.Errorf("bill total = %d, want 1350", bill.TotalCent)
	}
}

func TestBill_UnknownSale(t *testing.T) {
	db := setupTestDB(t)
	sales := NewSales(db)

	_, err := sales.Bill(4242)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Bill unknown sale error = %v, want ErrNotFound", err)
	}
}
