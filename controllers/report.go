package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"rescue-hub/models"
	"rescue-hub/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateReport handles POST /reports (multipart, image required).
func CreateReport(c *gin.Context) {
	report := models.Report{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		Severity:   c.PostForm("severity"),
		Location:   c.PostForm("location"),
		Keywords:   c.PostForm("keywords"),
		AuthorName: c.PostForm("authorName"),
	}

	target := c.PostForm("donationTarget")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "donationTarget is required"})
		return
	}
	targetValue, err := strconv.ParseFloat(target, 64)
	if err != nil || targetValue < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "donationTarget must be a non-negative number"})
		return
	}
	report.DonationTarget = targetValue

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image is required"})
		return
	}

	// Validate before touching storage so a bad request uploads nothing.
	probe := report
	probe.Image = "pending"
	if err := models.ValidateNewReport(probe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to open image"})
		return
	}
	defer f.Close()

	imageRef, err := storage.Files.Save(c.Request.Context(), f, file.Header.Get("Content-Type"), "report_images")
	if err != nil {
		logrus.WithError(err).Error("report image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store image"})
		return
	}
	report.Image = imageRef

	created, err := models.InsertReport(report)
	if err != nil {
		logrus.WithError(err).Error("report insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// GetReports handles GET /reports, most recent first.
func GetReports(c *gin.Context) {
	reports, err := models.GetAllReports()
	if err != nil {
		logrus.WithError(err).Error("report list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

// GetReportsByAuthor handles GET /reports/author/:name.
func GetReportsByAuthor(c *gin.Context) {
	reports, err := models.GetReportsByAuthor(c.Param("name"))
	if err != nil {
		logrus.WithError(err).Error("report author list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

// GetReportByID handles GET /reports/:id.
func GetReportByID(c *gin.Context) {
	report, err := models.GetReportByID(c.Param("id"))
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// UpdateReport handles PUT /reports/:id (multipart, image optional). Only the
// supplied fields are replaced.
func UpdateReport(c *gin.Context) {
	set := bson.M{}

	if v := c.PostForm("title"); v != "" {
		set["title"] = v
	}
	if v := c.PostForm("content"); v != "" {
		set["content"] = v
	}
	if v := c.PostForm("severity"); v != "" {
		if !models.ValidSeverity(v) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "severity must be one of urgent, ongoing, basic"})
			return
		}
		set["severity"] = v
	}
	if v := c.PostForm("location"); v != "" {
		if !models.ValidLocation(v) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown location"})
			return
		}
		set["location"] = v
	}
	if v := c.PostForm("keywords"); v != "" {
		set["keywords"] = v
	}
	if v := c.PostForm("donationTarget"); v != "" {
		targetValue, err := strconv.ParseFloat(v, 64)
		if err != nil || targetValue < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "donationTarget must be a non-negative number"})
			return
		}
		set["donation_target"] = targetValue
	}

	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to open image"})
			return
		}
		defer f.Close()

		imageRef, err := storage.Files.Save(c.Request.Context(), f, file.Header.Get("Content-Type"), "report_images")
		if err != nil {
			logrus.WithError(err).Error("report image upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store image"})
			return
		}
		set["image"] = imageRef
	}

	updated, err := models.UpdateReport(c.Param("id"), set)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report updated successfully", "data": updated})
}

// DeleteReport handles DELETE /reports/:id and returns the removed record
// for confirmation display.
func DeleteReport(c *gin.Context) {
	deleted, err := models.DeleteReport(c.Param("id"))
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully", "data": deleted})
}

// Donate handles POST /reports/:id/donate. Donations are display-only
// counters; no settlement happens here.
func Donate(c *gin.Context) {
	var input struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "amount must be a positive number"})
		return
	}

	updated, err := models.IncrementDonation(c.Param("id"), input.Amount)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid report ID format"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report not found"})
	default:
		logrus.WithError(err).Error("report operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
	}
}
