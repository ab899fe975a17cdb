package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput         = "invalid input"
	msgUserAlreadyExists    = "user already exists"
	msgFailedToHashPassword = "failed to hash password"
	msgInvalidCredentials   = "invalid username or password"
	msgFailedToGenToken     = "failed to generate token"
	msgInternalServerError  = "Internal server error"
	msgUserCreated          = "User created successfully."
	msgProfileUpdated       = "Profile updated successfully."
	msgAccountDeleted       = "Account deleted successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func checkUserExists(email, username string) (bool, error) {
	var existingUser models.User
	result := initializers.DB.Where("email = ? OR username = ?", email, username).Find(&existingUser)
	return result.RowsAffected > 0, result.Error
}

func findUserByIdentifier(identifier string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ? OR username = ?", identifier, identifier).First(&user)
	return user, result.Error
}

// currentUserID reads the user id placed into the context by the
// Authenticate middleware.
func currentUserID(ctx *gin.Context) (int, bool) {
	id, exists := ctx.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := id.(int)
	return userID, ok
}

// Signup handles user registration
func Signup(ctx *gin.Context) {
	var signUpData struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	exists, err := checkUserExists(signUpData.Email, signUpData.Username)
	if err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Username: signUpData.Username,
		Email:    signUpData.Email,
		Phone:    signUpData.Phone,
		Address:  signUpData.Address,
		Password: hashedPassword,
		Role:     "user",
	}

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "id": user.ID})
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByIdentifier(loginData.Identifier)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

// GetProfile returns the authenticated user's account details.
func GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates username, email, phone or address for the
// authenticated user. Empty fields are left unchanged.
func UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var profileData struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if err := ctx.ShouldBindJSON(&profileData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	if profileData.Username != "" {
		user.Username = profileData.Username
	}
	if profileData.Email != "" {
		user.Email = profileData.Email
	}
	if profileData.Phone != "" {
		user.Phone = profileData.Phone
	}
	if profileData.Address != "" {
		user.Address = profileData.Address
	}

	if err := initializers.DB.Save(&user).Error; err != nil {
		log.Println("Profile update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProfileUpdated, "user": user})
}

// DeleteProfile removes the authenticated user's account.
func DeleteProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	if result := initializers.DB.Delete(&models.User{}, userID); result.Error != nil {
		log.Println("Account deletion error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAccountDeleted})
}
