package service

import (
	"fmt"
	"time"

	"smart-billing/internal/models"

	"gorm.io/gorm"
)

// Reports answers the aggregate queries. Read-only; every method works
// off the same store the other services write to.
type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

// SalesSummary is the headline sales count and revenue.
type SalesSummary struct {
	Count       int64
	RevenueCent int64
}

// Summary counts sales and sums revenue, optionally over an inclusive
// date range. A start after the end is rejected.
func (r *Reports) Summary(start, end *time.Time) (*SalesSummary, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, invalidf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	q := r.db.Model(&models.Sale{})
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		// end is inclusive: everything before the following midnight
		q = q.Where("date < ?", end.Add(24*time.Hour))
	}

	var summary SalesSummary
	if err := q.
		Select("COUNT(*) AS count, COALESCE(SUM(total_cent), 0) AS revenue_cent").
		Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &summary, nil
}

// ProductSales is one row of the top-sellers report.
type ProductSales struct {
	ProductID uint
	Name      string
	UnitsSold int64
}

// TopProducts returns the best sellers by total quantity sold,
// descending, ties broken by product id ascending.
func (r *Reports) TopProducts(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		return nil, invalidf("top products limit must be positive, got %d", limit)
	}

	var rows []ProductSales
	if err := r.db.Model(&models.SaleItem{}).
		Select("sale_items.product_id, products.name, SUM(sale_items.quantity) AS units_sold").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Group("sale_items.product_id, products.name").
		Order("units_sold DESC, sale_items.product_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return rows, nil
}

// LowStock lists products whose stock fell below the threshold,
// scarcest first. A product exactly at the threshold is not included.
func (r *Reports) LowStock(threshold int64) ([]models.Product, error) {
	if threshold <= 0 {
		return nil, invalidf("low stock threshold must be positive, got %d", threshold)
	}

	var products []models.Product
	if err := r.db.
		Where("quantity < ?", threshold).
		Order("quantity ASC, id ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return products, nil
}

// PurchaseHistory is one customer's sales, newest first, with the sum
// of their totals.
type PurchaseHistory struct {
	Customer  models.Customer
	Sales     []models.Sale
	TotalCent int64
}

// CustomerHistory returns all sales for the customer plus their
// lifetime purchase total.
func (r *Reports) CustomerHistory(customerID uint) (*PurchaseHistory, error) {
	var customer models.Customer
	if err := r.db.First(&customer, customerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundf("customer %d", customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	var sales []models.Sale
	if err := r.db.
		Where("customer_id = ?", customerID).
		Order("date DESC, id DESC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("customer sales: %w", err)
	}

	history := PurchaseHistory{Customer: customer, Sales: sales}
	for i := range sales {
		history.TotalCent += sales[i].TotalCent
	}
	return &history, nil
}
