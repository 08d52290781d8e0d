// internal/services/product_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopfloor/inventory-backend/internal/models"
)

var testDBCounter int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBCounter)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps the shared in-memory database alive for the test.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func validRequest(id string) ProductRequest {
	return ProductRequest{
		ID:       id,
		Name:     "Apples",
		Category: "Fruits",
		Price:    floatPtr(2.50),
		Quantity: intPtr(10),
		Discount: floatPtr(10),
	}
}

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewProductService(s.db)
}

func (s *ProductServiceTestSuite) count() int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.Product{}).Count(&count).Error)
	return count
}

func (s *ProductServiceTestSuite) TestCreate() {
	req := validRequest("P001")
	product, err := s.service.Create(&req)

	s.Require().NoError(err)
	s.Equal("P001", product.ID)
	s.EqualValues(1, s.count())

	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", "P001").Error)
	s.Equal("Apples", stored.Name)
	s.True(stored.Price.Equal(decimal.NewFromFloat(2.50)))
	s.Equal(10, stored.Quantity)
}

func (s *ProductServiceTestSuite) TestCreateDuplicateIDFails() {
	req := validRequest("P001")
	_, err := s.service.Create(&req)
	s.Require().NoError(err)

	dup := validRequest("P001")
	dup.Name = "Other apples"
	_, err = s.service.Create(&dup)

	s.Require().Error(err)
	s.ErrorIs(err, ErrConstraintViolation)
	s.EqualValues(1, s.count())

	// Original row untouched
	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", "P001").Error)
	s.Equal("Apples", stored.Name)
}

func (s *ProductServiceTestSuite) TestCreateMissingFieldsFails() {
	tests := []struct {
		name   string
		mutate func(*ProductRequest)
	}{
		{"missing id", func(r *ProductRequest) { r.ID = "" }},
		{"missing name", func(r *ProductRequest) { r.Name = "" }},
		{"missing category", func(r *ProductRequest) { r.Category = "" }},
		{"missing price", func(r *ProductRequest) { r.Price = nil }},
		{"missing quantity", func(r *ProductRequest) { r.Quantity = nil }},
		{"negative price", func(r *ProductRequest) { r.Price = floatPtr(-1) }},
		{"negative quantity", func(r *ProductRequest) { r.Quantity = intPtr(-1) }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := validRequest("P999")
			tt.mutate(&req)

			_, err := s.service.Create(&req)
			s.ErrorIs(err, ErrConstraintViolation)
		})
	}

	s.EqualValues(0, s.count())
}

func (s *ProductServiceTestSuite) TestBulkUpsertInsertsAndReplaces() {
	req := validRequest("P001")
	_, err := s.service.Create(&req)
	s.Require().NoError(err)

	replacement := validRequest("P001")
	replacement.Name = "Green apples"
	replacement.Quantity = intPtr(99)
	fresh := validRequest("P002")
	fresh.Name = "Bananas"

	count, err := s.service.BulkUpsert([]ProductRequest{replacement, fresh})

	s.Require().NoError(err)
	s.Equal(2, count)
	s.EqualValues(2, s.count())

	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", "P001").Error)
	s.Equal("Green apples", stored.Name)
	s.Equal(99, stored.Quantity)
}

func (s *ProductServiceTestSuite) TestBulkUpsertIsAtomic() {
	req := validRequest("P001")
	_, err := s.service.Create(&req)
	s.Require().NoError(err)

	good := validRequest("P002")
	alsoGood := validRequest("P003")
	bad := validRequest("P004")
	bad.Price = nil

	count, err := s.service.BulkUpsert([]ProductRequest{good, bad, alsoGood})

	s.Require().Error(err)
	s.ErrorIs(err, ErrConstraintViolation)
	s.Zero(count)

	// Nothing from the batch committed; pre-call state intact.
	s.EqualValues(1, s.count())
	var stored models.Product
	s.NoError(s.db.First(&stored, "id = ?", "P001").Error)
	s.Error(s.db.First(&models.Product{}, "id = ?", "P002").Error)
}

func (s *ProductServiceTestSuite) TestBulkUpsertEmptyBatch() {
	count, err := s.service.BulkUpsert(nil)
	s.NoError(err)
	s.Zero(count)
}

func (s *ProductServiceTestSuite) TestUpdateReplacesAllFields() {
	exp := models.NewDateOnly(2030, time.January, 15)
	req := validRequest("P001")
	req.ExpiryDate = &exp
	_, err := s.service.Create(&req)
	s.Require().NoError(err)

	update := ProductRequest{
		Name:     "Red apples",
		Category: "Produce",
		Price:    floatPtr(3.25),
		Quantity: intPtr(7),
		// ExpiryDate omitted: full-field update clears it
	}
	s.Require().NoError(s.service.Update("P001", &update))

	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", "P001").Error)
	s.Equal("Red apples", stored.Name)
	s.Equal("Produce", stored.Category)
	s.True(stored.Price.Equal(decimal.NewFromFloat(3.25)))
	s.Equal(7, stored.Quantity)
	s.Nil(stored.ExpiryDate)
	s.True(stored.Discount.Equal(decimal.Zero))
}

func (s *ProductServiceTestSuite) TestUpdateMissingIDIsNoOp() {
	req := validRequest("P001")
	_, err := s.service.Create(&req)
	s.Require().NoError(err)

	update := validRequest("")
	s.NoError(s.service.Update("does-not-exist", &update))

	// Store unchanged
	s.EqualValues(1, s.count())
	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", "P001").Error)
	s.Equal("Apples", stored.Name)
}

func (s *ProductServiceTestSuite) TestDeleteIsIdempotent() {
	req := validRequest("P001")
	_, err := s.service.Create(&req)
	s.Require().NoError(err)

	s.NoError(s.service.Delete("P001"))
	s.EqualValues(0, s.count())

	// Second delete of the same id, and a delete of an unknown id, both succeed.
	s.NoError(s.service.Delete("P001"))
	s.NoError(s.service.Delete("never-existed"))
}

func (s *ProductServiceTestSuite) TestListScans() {
	for i, category := range []string{"Fruits", "Dairy", "Fruits"} {
		req := validRequest(fmt.Sprintf("P%03d", i+1))
		req.Category = category
		if i == 0 {
			d := models.NewDateOnly(2030, time.June, 1)
			req.ExpiryDate = &d
		}
		_, err := s.service.Create(&req)
		s.Require().NoError(err)
	}

	all, err := s.service.ListAll()
	s.Require().NoError(err)
	s.Len(all, 3)

	fruits, err := s.service.ListByCategory("Fruits")
	s.Require().NoError(err)
	s.Len(fruits, 2)

	lower, err := s.service.ListByCategory("fruits")
	s.Require().NoError(err)
	s.Empty(lower)

	withExpiry, err := s.service.ListWithExpiry()
	s.Require().NoError(err)
	s.Require().Len(withExpiry, 1)
	s.Equal("P001", withExpiry[0].ID)
	s.Require().NotNil(withExpiry[0].ExpiryDate)
	s.Equal("2030-06-01", withExpiry[0].ExpiryDate.String())
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func TestProductRequestDiscountDefaultsToZero(t *testing.T) {
	req := validRequest("P001")
	req.Discount = nil

	p := req.toModel()
	assert.True(t, p.Discount.Equal(decimal.Zero))
}
