// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopfloor/inventory-backend/internal/database"
	"github.com/shopfloor/inventory-backend/internal/models"
	"github.com/shopfloor/inventory-backend/internal/utils"
)

// ErrConstraintViolation covers duplicate ids on insert and missing or
// malformed required fields. It always maps to a 400 at the API surface.
var ErrConstraintViolation = errors.New("constraint violation")

// ProductService owns all access to the products table. The *gorm.DB handle is
// injected so tests can swap in an in-memory store.
type ProductService struct {
	db *gorm.DB
}

// ProductRequest is the inbound shape for create, update, and bulk-upsert
// rows. On update the id comes from the URL, not the body.
type ProductRequest struct {
	ID         string           `json:"id" validate:"required"`
	Name       string           `json:"name" validate:"required"`
	Category   string           `json:"category" validate:"required"`
	Price      *float64         `json:"price" validate:"required,gte=0"`
	Quantity   *int             `json:"quantity" validate:"required,gte=0"`
	ExpiryDate *models.DateOnly `json:"expiryDate"`
	Discount   *float64         `json:"discount"`
}

func (r *ProductRequest) toModel() *models.Product {
	discount := decimal.Zero
	if r.Discount != nil {
		discount = decimal.NewFromFloat(*r.Discount)
	}

	return &models.Product{
		ID:         r.ID,
		Name:       r.Name,
		Category:   r.Category,
		Price:      decimal.NewFromFloat(*r.Price),
		Quantity:   *r.Quantity,
		ExpiryDate: r.ExpiryDate,
		Discount:   discount,
	}
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Create inserts a new product. A duplicate id is a constraint violation, not
// a replace.
func (s *ProductService) Create(req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConstraintViolation, utils.ValidationMessage(err))
	}

	product := req.toModel()
	if err := s.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product %q already exists", ErrConstraintViolation, product.ID)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// BulkUpsert applies insert-or-replace for each row as a single all-or-nothing
// unit. Every row is validated before anything is written, and the writes run
// in one transaction, so a bad row leaves the store untouched.
func (s *ProductService) BulkUpsert(reqs []ProductRequest) (int, error) {
	for i := range reqs {
		if err := utils.ValidateStruct(&reqs[i]); err != nil {
			return 0, fmt.Errorf("%w: row %d: %s", ErrConstraintViolation, i, utils.ValidationMessage(err))
		}
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for i := range reqs {
			product := reqs[i].toModel()
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(product).Error; err != nil {
				return fmt.Errorf("failed to upsert product %q: %w", product.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(reqs), nil
}

// Update replaces every mutable field of the product with the given id. An
// unknown id is a silent no-op, not an error; callers cannot distinguish the
// two outcomes.
func (s *ProductService) Update(id string, req *ProductRequest) error {
	req.ID = id
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrConstraintViolation, utils.ValidationMessage(err))
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = decimal.NewFromFloat(*req.Discount)
	}

	// A map keeps zero and NULL values in the update set, which a struct
	// argument to Updates would drop.
	updates := map[string]interface{}{
		"name":        req.Name,
		"category":    req.Category,
		"price":       decimal.NewFromFloat(*req.Price),
		"quantity":    *req.Quantity,
		"expiry_date": req.ExpiryDate,
		"discount":    discount,
	}

	if err := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes the product if present. Absence is not an error.
func (s *ProductService) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Product{}).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// ListAll returns every record in storage order.
func (s *ProductService) ListAll() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// ListByCategory returns records whose category matches exactly,
// case-sensitively.
func (s *ProductService) ListByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("category = ?", category).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products by category: %w", err)
	}
	return products, nil
}

// ListWithExpiry returns records that carry an expiry date.
func (s *ProductService) ListWithExpiry() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("expiry_date IS NOT NULL").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expiring products: %w", err)
	}
	return products, nil
}
