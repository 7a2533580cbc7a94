package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"rescue-hub/models"
	"rescue-hub/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Read lazily so the secret loaded from .env is picked up.
func jwtSecret() []byte { return []byte(os.Getenv("JWT_SECRET")) }

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func generateTeamJWT(teamID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"team_id": teamID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// RegisterRescueTeam handles POST /rescue-teams/register (multipart,
// certificate and profilePicture required). Passwords are stored hashed only.
func RegisterRescueTeam(c *gin.Context) {
	team := models.RescueTeam{
		TeamName:     c.PostForm("teamName"),
		Email:        c.PostForm("email"),
		Phone:        c.PostForm("phone"),
		Password:     c.PostForm("password"),
		Description:  c.PostForm("description"),
		DeployedDate: c.PostForm("deployedDate"),
	}

	size := c.PostForm("teamSize")
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "teamSize is required"})
		return
	}
	sizeValue, err := strconv.Atoi(size)
	if err != nil || sizeValue <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "teamSize must be a positive integer"})
		return
	}
	team.TeamSize = sizeValue

	certificate, err := c.FormFile("certificate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "certificate is required"})
		return
	}
	profilePicture, err := c.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "profilePicture is required"})
		return
	}

	// Validate fields before uploading anything.
	probe := team
	probe.CertificatePath = "pending"
	probe.ProfilePicturePath = "pending"
	if err := models.ValidateNewRescueTeam(probe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if _, err := models.FindRescueTeamByEmail(team.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already registered"})
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		logrus.WithError(err).Error("rescue team email lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}

	certRef, err := saveUpload(c, certificate, "certificates")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store certificate"})
		return
	}
	team.CertificatePath = certRef

	pictureRef, err := saveUpload(c, profilePicture, "team_profiles")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store profile picture"})
		return
	}
	team.ProfilePicturePath = pictureRef

	hashed, err := hashPassword(team.Password)
	if err != nil {
		logrus.WithError(err).Error("password hash failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}
	team.Password = hashed

	created, err := models.InsertRescueTeam(team)
	if err != nil {
		logrus.WithError(err).Error("rescue team insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Registration failed"})
		return
	}

	// Confirmation mail is best effort.
	go func() {
		if err := utils.SendRegistrationEmail(created.Email, created.TeamName); err != nil {
			logrus.WithError(err).Warn("registration email failed")
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Rescue team registered successfully",
		"data": gin.H{
			"id":       created.ID.Hex(),
			"teamName": created.TeamName,
			"email":    created.Email,
		},
	})
}

// LoginRescueTeam handles POST /rescue-teams/login and issues a signed
// session token in a cookie.
func LoginRescueTeam(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	team, err := models.FindRescueTeamByEmail(input.Email)
	if err != nil || !checkPasswordHash(input.Password, team.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	token, err := generateTeamJWT(team.ID.Hex())
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   3600 * 24,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "data": gin.H{"token": token}})
}

// GetRescueTeams handles GET /rescue-teams.
func GetRescueTeams(c *gin.Context) {
	teams, err := models.GetAllRescueTeams()
	if err != nil {
		logrus.WithError(err).Error("rescue team list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": teams})
}

// GetRescueTeamByID handles GET /rescue-teams/:id.
func GetRescueTeamByID(c *gin.Context) {
	team, err := models.GetRescueTeamByID(c.Param("id"))
	if err != nil {
		respondTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": team})
}

// GetCurrentRescueTeam handles GET /rescue-teams/me for a logged-in team.
func GetCurrentRescueTeam(c *gin.Context) {
	teamID := c.GetString("team_id")
	if teamID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	team, err := models.GetRescueTeamByID(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": team})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid team ID format"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Rescue team not found"})
	default:
		logrus.WithError(err).Error("rescue team operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
	}
}
