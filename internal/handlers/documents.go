package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/fleetdesk/fleetdesk-backend/internal/booking"
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// runExtraction performs one OCR pass in the background. Before writing the
// result it re-reads the scan row: if the scan was cancelled (a newer upload
// superseded it) the result is dropped.
func runExtraction(db *gorm.DB, hub *services.Hub, extractor services.Extractor, scan models.DocumentScan) {
	ctx, cancel := context.WithTimeout(context.Background(), services.OCRTimeout)
	defer cancel()

	result, err := extractor.ExtractFields(ctx, services.GetImageURL(scan.ImageKey))

	var current models.DocumentScan
	if dbErr := db.Where("scan_id = ?", scan.ScanID).First(&current).Error; dbErr != nil {
		log.Printf("Scan %s disappeared before extraction finished", scan.ScanID)
		return
	}
	if current.Status != models.ScanStatusProcessing {
		// Superseded or cancelled while we were extracting
		return
	}

	switch {
	case errors.Is(err, services.ErrOCRTimeout) || errors.Is(err, context.DeadlineExceeded):
		current.Status = models.ScanStatusTimeout
		current.Error = "extraction timed out"
	case err != nil:
		current.Status = models.ScanStatusFailed
		current.Error = err.Error()
		log.Printf("OCR extraction failed for scan %s: %v", scan.ScanID, err)
	default:
		fields, _ := json.Marshal(result.Fields)
		current.Status = models.ScanStatusDone
		current.Confidence = result.Confidence
		current.Fields = string(fields)
	}

	if err := db.Save(&current).Error; err != nil {
		log.Printf("Failed to save scan result %s: %v", scan.ScanID, err)
		return
	}

	if hub != nil {
		services.NotifyScanCompleted(hub, current.UploadedBy, services.ScanCompleted{
			ScanID:     current.ScanID,
			Status:     current.Status,
			Confidence: current.Confidence,
		})
	}
}

// UploadScan accepts an ID-document image and starts an OCR pass on it.
// Any earlier scan of the same user that is still processing is cancelled:
// only the most recent upload can fill the form.
func UploadScan(db *gorm.DB, hub *services.Hub, extractor services.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		file, err := c.FormFile("document")
		if err != nil {
			c.JSON(400, gin.H{"error": "No document file provided"})
			return
		}

		key, err := services.UploadImage(file, "documents")
		if err != nil {
			log.Printf("Failed to store document image: %v", err)
			c.JSON(500, gin.H{"error": "Failed to store document"})
			return
		}

		if err := db.Model(&models.DocumentScan{}).
			Where("uploaded_by = ? AND status = ?", userID, models.ScanStatusProcessing).
			Update("status", models.ScanStatusCancelled).Error; err != nil {
			log.Printf("Failed to cancel earlier scans: %v", err)
		}

		scan := models.DocumentScan{
			ScanID:     uuid.New().String(),
			UploadedBy: userID,
			ImageKey:   key,
			Status:     models.ScanStatusProcessing,
		}

		if err := db.Create(&scan).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create scan"})
			return
		}

		go runExtraction(db, hub, extractor, scan)

		c.JSON(202, gin.H{
			"scanId": scan.ScanID,
			"status": scan.Status,
		})
	}
}

// GetScan is the polling endpoint for a scan's status and extracted fields.
func GetScan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		scanID := c.Param("scanId")

		var scan models.DocumentScan
		if err := db.Where("scan_id = ? AND uploaded_by = ?", scanID, userID).
			First(&scan).Error; err != nil {
			c.JSON(404, gin.H{"error": "Scan not found"})
			return
		}

		response := gin.H{
			"scanId":     scan.ScanID,
			"status":     scan.Status,
			"confidence": scan.Confidence,
		}
		if scan.Status == models.ScanStatusDone && scan.Fields != "" {
			var fields map[string]string
			if err := json.Unmarshal([]byte(scan.Fields), &fields); err == nil {
				response["fields"] = fields
			}
		}
		if scan.Error != "" {
			response["error"] = scan.Error
		}

		c.JSON(200, response)
	}
}

// CancelScan abandons a processing scan so its late result is discarded.
func CancelScan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		scanID := c.Param("scanId")

		var scan models.DocumentScan
		if err := db.Where("scan_id = ? AND uploaded_by = ?", scanID, userID).
			First(&scan).Error; err != nil {
			c.JSON(404, gin.H{"error": "Scan not found"})
			return
		}

		if scan.Status != models.ScanStatusProcessing {
			c.JSON(409, gin.H{"error": "Scan is no longer processing"})
			return
		}

		scan.Status = models.ScanStatusCancelled
		if err := db.Save(&scan).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel scan"})
			return
		}

		c.JSON(200, gin.H{"scanId": scan.ScanID, "status": scan.Status})
	}
}

// MergeScanFields applies a finished scan's fields onto the customer form
// state the client sends. Fields the user already edited are never
// overwritten, and low-confidence extractions are dropped.
func MergeScanFields(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		scanID := c.Param("scanId")

		var input struct {
			Current    map[string]string `json:"current" binding:"required"`
			UserEdited map[string]bool   `json:"userEdited"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var scan models.DocumentScan
		if err := db.Where("scan_id = ? AND uploaded_by = ?", scanID, userID).
			First(&scan).Error; err != nil {
			c.JSON(404, gin.H{"error": "Scan not found"})
			return
		}

		if scan.Status != models.ScanStatusDone {
			c.JSON(409, gin.H{"error": "Scan has no extracted fields"})
			return
		}

		var extracted map[string]string
		if err := json.Unmarshal([]byte(scan.Fields), &extracted); err != nil {
			c.JSON(500, gin.H{"error": "Stored scan result is unreadable"})
			return
		}

		merged := booking.MergeFields(input.Current, extracted, input.UserEdited, scan.Confidence)

		c.JSON(200, gin.H{
			"fields":     merged,
			"confidence": scan.Confidence,
		})
	}
}
