package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/rescue-teams/register", RegisterRescueTeam)
	r.GET("/rescue-teams/:id", GetRescueTeamByID)
	return r
}

func multipartTeam(t *testing.T, fields map[string]string, files []string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, name := range files {
		part, err := writer.CreateFormFile(name, name+".jpeg")
		require.NoError(t, err)
		_, err = part.Write([]byte("file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func baseTeamFields() map[string]string {
	return map[string]string{
		"teamName":     "Edhi Rescue Unit",
		"email":        "unit@edhi.org",
		"phone":        "+92-300-0000000",
		"password":     "s3cret-password",
		"description":  "Flood response specialists",
		"teamSize":     "12",
		"deployedDate": "2025-06-01",
	}
}

// These requests fail during validation, before any file or record is written.

func TestRegisterRescueTeamMissingCertificate(t *testing.T) {
	body, contentType := multipartTeam(t, baseTeamFields(), []string{"profilePicture"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rescue-teams/register", body)
	req.Header.Set("Content-Type", contentType)
	teamRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "certificate")
}

func TestRegisterRescueTeamMissingProfilePicture(t *testing.T) {
	body, contentType := multipartTeam(t, baseTeamFields(), []string{"certificate"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rescue-teams/register", body)
	req.Header.Set("Content-Type", contentType)
	teamRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "profilePicture")
}

func TestRegisterRescueTeamBadTeamSize(t *testing.T) {
	fields := baseTeamFields()
	fields["teamSize"] = "zero"
	body, contentType := multipartTeam(t, fields, []string{"certificate", "profilePicture"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rescue-teams/register", body)
	req.Header.Set("Content-Type", contentType)
	teamRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "teamSize")
}

func TestRegisterRescueTeamMissingPassword(t *testing.T) {
	fields := baseTeamFields()
	delete(fields, "password")
	body, contentType := multipartTeam(t, fields, []string{"certificate", "profilePicture"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rescue-teams/register", body)
	req.Header.Set("Content-Type", contentType)
	teamRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")
}

func TestGetRescueTeamMalformedID(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rescue-teams/not-hex", nil)
	teamRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid team ID format")
}
