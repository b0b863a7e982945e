package service

import (
	"errors"
	"fmt"
	"strings"

	"smart-billing/internal/models"
	"smart-billing/internal/util"

	"gorm.io/gorm"
)

// Catalog owns customer and product records.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ---------- customers ----------

// CustomerPatch carries a partial customer update. Nil fields are left
// unchanged.
type CustomerPatch struct {
	Name    *string
	Contact *string
}

func (s *Catalog) CreateCustomer(name, contact string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if err := util.ValidateName(name); err != nil {
		return nil, invalidf("customer name: %v", err)
	}
	if contact == "" {
		return nil, invalidf("customer contact is required")
	}

	customer := models.Customer{Name: name, Contact: contact}
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

func (s *Catalog) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Order("id ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *Catalog) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("customer %d", id)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &customer, nil
}

// SearchCustomers matches names case-insensitively by substring.
func (s *Catalog) SearchCustomers(name string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + strings.TrimSpace(name) + "%"
	if err := s.db.
		Where("name LIKE ? COLLATE NOCASE", pattern).
		Order("id ASC").
		Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer applies only the fields present in the patch. All
// values go through parameter binding, never into statement text.
func (s *Catalog) UpdateCustomer(id uint, patch CustomerPatch) (*models.Customer, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := util.ValidateName(name); err != nil {
			return nil, invalidf("customer name: %v", err)
		}
		fields["name"] = name
	}
	if patch.Contact != nil {
		contact := strings.TrimSpace(*patch.Contact)
		if contact == "" {
			return nil, invalidf("customer contact is required")
		}
		fields["contact"] = contact
	}
	if len(fields) == 0 {
		return customer, nil
	}

	if err := s.db.Model(customer).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Deletion is refused while sales
// still reference the customer, so billing history stays intact.
func (s *Catalog) DeleteCustomer(id uint) error {
	if _, err := s.GetCustomer(id); err != nil {
		return err
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).
		Where("customer_id = ?", id).
		Count(&saleCount).Error; err != nil {
		return fmt.Errorf("count customer sales: %w", err)
	}
	if saleCount > 0 {
		return invalidf("customer %d has %d recorded sales", id, saleCount)
	}

	if err := s.db.Delete(&models.Customer{}, id).Error; err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// ---------- products ----------

// ProductPatch carries a partial product update. Nil fields are left
// unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	PriceCent   *int64
	Quantity    *int64
}

func (s *Catalog) CreateProduct(name, description string, priceCent, quantity int64) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if err := util.ValidateName(name); err != nil {
		return nil, invalidf("product name: %v", err)
	}
	if priceCent < 0 {
		return nil, invalidf("product price must not be negative")
	}
	if quantity < 0 {
		return nil, invalidf("product quantity must not be negative")
	}

	product := models.Product{
		Name:        name,
		Description: strings.TrimSpace(description),
		PriceCent:   priceCent,
		Quantity:    quantity,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *Catalog) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Catalog) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %d", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

func (s *Catalog) UpdateProduct(id uint, patch ProductPatch) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := util.ValidateName(name); err != nil {
			return nil, invalidf("product name: %v", err)
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.PriceCent != nil {
		if *patch.PriceCent < 0 {
			return nil, invalidf("product price must not be negative")
		}
		fields["price_cent"] = *patch.PriceCent
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, invalidf("product quantity must not be negative")
		}
		fields["quantity"] = *patch.Quantity
	}
	if len(fields) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product unless sale lines still reference it.
func (s *Catalog) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}

	var itemCount int64
	if err := s.db.Model(&models.SaleItem{}).
		Where("product_id = ?", id).
		Count(&itemCount).Error; err != nil {
		return fmt.Errorf("count product sale items: %w", err)
	}
	if itemCount > 0 {
		return invalidf("product %d appears in %d sale lines", id, itemCount)
	}

	if err := s.db.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
