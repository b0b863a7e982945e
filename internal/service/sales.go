package service

import (
	"errors"
	"fmt"
	"time"

	"smart-billing/internal/models"
	"smart-billing/internal/util"

	"gorm.io/gorm"
)

// Sales is the transaction engine: it creates sales, attaches line
// items while decrementing stock, and finalizes totals.
type Sales struct {
	db *gorm.DB
}

func NewSales(db *gorm.DB) *Sales {
	return &Sales{db: db}
}

// Create opens a new sale for an existing customer. The total stays 0
// until Finalize runs.
func (s *Sales) Create(customerID uint, date time.Time) (*models.Sale, error) {
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("customer %d", customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	sale := models.Sale{
		CustomerID: customerID,
		Date:       date,
		Status:     models.SaleStatusOpen,
		TotalCent:  0,
	}
	if err := s.db.Create(&sale).Error; err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return &sale, nil
}

// AddItem attaches a line to an open sale and decrements the product's
// stock. unitPriceCent overrides the catalog price (discounts); nil
// snapshots the current catalog price. The item insert and the stock
// decrement run in one transaction so a failure between them cannot
// desynchronize stock from the recorded lines.
func (s *Sales) AddItem(saleID, productID uint, quantity int64, unitPriceCent *int64) (*models.SaleItem, error) {
	if err := util.ValidateQuantity(quantity); err != nil {
		return nil, invalidf("item quantity: %v", err)
	}
	if unitPriceCent != nil && *unitPriceCent < 0 {
		return nil, invalidf("item price must not be negative")
	}

	var item models.SaleItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("sale %d", saleID)
			}
			return fmt.Errorf("get sale: %w", err)
		}
		if sale.Status == models.SaleStatusFinalized {
			return invalidf("sale %d is already finalized", saleID)
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("product %d", productID)
			}
			return fmt.Errorf("get product: %w", err)
		}
		if product.Quantity < quantity {
			return invalidf("insufficient stock for product %d: have %d, want %d",
				productID, product.Quantity, quantity)
		}

		price := product.PriceCent
		if unitPriceCent != nil {
			price = *unitPriceCent
		}

		item = models.SaleItem{
			SaleID:    saleID,
			ProductID: productID,
			Quantity:  quantity,
			PriceCent: price,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity)).Error; err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Finalize recomputes the sale total as the sum of its line totals and
// marks the sale finalized. Calling it again without item changes
// yields the same total.
func (s *Sales) Finalize(saleID uint) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("sale %d", saleID)
			}
			return fmt.Errorf("get sale: %w", err)
		}

		var total int64
		if err := tx.Model(&models.SaleItem{}).
			Where("sale_id = ?", saleID).
			Select("COALESCE(SUM(quantity * price_cent), 0)").
			Scan(&total).Error; err != nil {
			return fmt.Errorf("sum sale items: %w", err)
		}

		if err := tx.Model(&sale).Updates(map[string]interface{}{
			"total_cent": total,
			"status":     models.SaleStatusFinalized,
		}).Error; err != nil {
			return fmt.Errorf("update sale total: %w", err)
		}
		sale.TotalCent = total
		sale.Status = models.SaleStatusFinalized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Get returns one sale with its customer and items.
func (s *Sales) Get(saleID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.
		Preload("Customer").
		Preload("Items").
		First(&sale, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("sale %d", saleID)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &sale, nil
}

// List returns all sales, newest first, with customers preloaded.
func (s *Sales) List() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.
		Preload("Customer").
		Order("date DESC, id DESC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// BillLine is one printed line of a bill.
type BillLine struct {
	ProductID   uint
	ProductName string
	Quantity    int64
	PriceCent   int64
	TotalCent   int64
}

// Bill is the printable view of a sale.
type Bill struct {
	SaleID       uint
	CustomerName string
	Date         time.Time
	Status       string
	Lines        []BillLine
	TotalCent    int64
}

// Bill assembles the printable bill for a sale: customer, date, lines
// in insertion order, and the sale's stored total. A sale without items
// yields an empty line list, not an error.
func (s *Sales) Bill(saleID uint) (*Bill, error) {
	sale, err := s.Get(saleID)
	if err != nil {
		return nil, err
	}

	var lines []BillLine
	if err := s.db.Model(&models.SaleItem{}).
		Select("sale_items.product_id, products.name AS product_name, sale_items.quantity, sale_items.price_cent, sale_items.quantity * sale_items.price_cent AS total_cent").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sale_items.sale_id = ?", saleID).
		Order("sale_items.id ASC").
		Scan(&lines).Error; err != nil {
		return nil, fmt.Errorf("load bill lines: %w", err)
	}

	return &Bill{
		SaleID:       sale.ID,
		CustomerName: sale.Customer.Name,
		Date:         sale.Date,
		Status:       sale.Status,
		Lines:        lines,
		TotalCent:    sale.TotalCent,
	}, nil
}
