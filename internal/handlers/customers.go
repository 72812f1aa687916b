package handlers

import (
	"log"

	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SearchCustomers finds customers by name, email or document number
func SearchCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")

		var customers []models.Customer
		query := db.Limit(25).Order("full_name")
		if q != "" {
			like := "%" + q + "%"
			query = query.Where(
				"full_name ILIKE ? OR email ILIKE ? OR document_number ILIKE ?",
				like, like, like,
			)
		}
		if err := query.Find(&customers).Error; err != nil {
			log.Printf("Failed to search customers: %v", err)
			c.JSON(200, []models.Customer{})
			return
		}

		c.JSON(200, customers)
	}
}

// GetCustomer retrieves one customer
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("id")

		var customer models.Customer
		if err := db.First(&customer, customerID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Customer not found"})
			return
		}

		c.JSON(200, customer)
	}
}

// UpsertCustomer creates or updates a customer identity, keyed by document
// number when present, falling back to email. A rental references the
// resulting customer id.
func UpsertCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FullName       string `json:"fullName" binding:"required"`
			Email          string `json:"email" binding:"omitempty,email"`
			PhoneNumber    string `json:"phoneNumber"`
			DocumentNumber string `json:"documentNumber"`
			Nationality    string `json:"nationality"`
			DateOfBirth    string `json:"dateOfBirth"`
			DocumentImage  string `json:"documentImage"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.Customer
		var found bool
		if input.DocumentNumber != "" {
			found = db.Where("document_number = ?", input.DocumentNumber).First(&existing).Error == nil
		}
		if !found && input.Email != "" {
			found = db.Where("email = ?", input.Email).First(&existing).Error == nil
		}

		if found {
			existing.FullName = input.FullName
			if input.Email != "" {
				existing.Email = input.Email
			}
			if input.PhoneNumber != "" {
				existing.PhoneNumber = input.PhoneNumber
			}
			if input.DocumentNumber != "" {
				existing.DocumentNumber = input.DocumentNumber
			}
			if input.Nationality != "" {
				existing.Nationality = input.Nationality
			}
			if input.DateOfBirth != "" {
				existing.DateOfBirth = input.DateOfBirth
			}
			if input.DocumentImage != "" {
				existing.DocumentImage = input.DocumentImage
			}

			if err := db.Save(&existing).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update customer"})
				return
			}
			c.JSON(200, existing)
			return
		}

		customer := models.Customer{
			FullName:       input.FullName,
			Email:          input.Email,
			PhoneNumber:    input.PhoneNumber,
			DocumentNumber: input.DocumentNumber,
			Nationality:    input.Nationality,
			DateOfBirth:    input.DateOfBirth,
			DocumentImage:  input.DocumentImage,
		}

		if err := db.Create(&customer).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create customer"})
			return
		}

		c.JSON(201, customer)
	}
}
