package controllers

import (
	"mime/multipart"

	"rescue-hub/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// saveUpload streams one multipart file into the configured file store and
// returns its reference.
func saveUpload(c *gin.Context, file *multipart.FileHeader, folder string) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	ref, err := storage.Files.Save(c.Request.Context(), f, file.Header.Get("Content-Type"), folder)
	if err != nil {
		logrus.WithError(err).WithField("folder", folder).Error("file upload failed")
		return "", err
	}
	return ref, nil
}
