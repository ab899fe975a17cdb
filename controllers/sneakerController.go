package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/bestsneakers/bestsneakers-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sneakerCacheTTL = 2 * time.Minute

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func invalidateSneakerCache() {
	utils.CacheInvalidate("sneakers:*")
}

func CreateSneaker(ctx *gin.Context) {
	var sneaker models.Sneaker
	if err := ctx.ShouldBindJSON(&sneaker); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&sneaker).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create sneaker", err)
		return
	}

	invalidateSneakerCache()
	ctx.JSON(http.StatusCreated, sneaker)
}

// applySneakerFilters narrows the listing query from the request's query
// parameters: name search, brand, category slug, gender, color, size and
// price range, plus available=true for in-stock only.
func applySneakerFilters(ctx *gin.Context, query *gorm.DB) *gorm.DB {
	if search := ctx.Query("search"); search != "" {
		query = query.Where("sneakers.name LIKE ?", "%"+search+"%")
	}
	if brand := ctx.Query("brand"); brand != "" {
		query = query.Joins("JOIN brands ON brands.id = sneakers.brand_id").
			Where("LOWER(brands.name) = LOWER(?)", brand)
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = sneakers.category_id").
			Where("categories.slug = ?", category)
	}
	if gender := ctx.Query("gender"); gender != "" {
		query = query.Where("sneakers.gender = ?", gender)
	}
	if color := ctx.Query("color"); color != "" {
		query = query.Where("LOWER(sneakers.color) = LOWER(?)", color)
	}
	if size := ctx.Query("size"); size != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM stocks st JOIN sizes sz ON sz.id = st.size_id WHERE st.sneaker_id = sneakers.id AND sz.value = ?)",
			size)
	}
	if priceMin := ctx.Query("price_min"); priceMin != "" {
		query = query.Where("sneakers.price >= ?", priceMin)
	}
	if priceMax := ctx.Query("price_max"); priceMax != "" {
		query = query.Where("sneakers.price <= ?", priceMax)
	}
	if ctx.Query("available") == "true" {
		query = query.Where("EXISTS (SELECT 1 FROM stocks s WHERE s.sneaker_id = sneakers.id AND s.quantity > 0)")
	}
	return query
}

// attachAvgRatings fills AvgRating for the listed sneakers with one grouped
// query over the reviews table.
func attachAvgRatings(sneakers []models.Sneaker) {
	if len(sneakers) == 0 {
		return
	}

	ids := make([]uint, len(sneakers))
	for i, s := range sneakers {
		ids[i] = s.ID
	}

	var rows []struct {
		SneakerID int
		Avg       float64
	}
	if err := initializers.DB.Model(&models.Review{}).
		Select("sneaker_id, AVG(rating) as avg").
		Where("sneaker_id IN ?", ids).
		Group("sneaker_id").
		Find(&rows).Error; err != nil {
		log.Println("Failed to load review averages:", err)
		return
	}

	avgByID := make(map[int]float64, len(rows))
	for _, row := range rows {
		avgByID[row.SneakerID] = row.Avg
	}
	for i := range sneakers {
		sneakers[i].AvgRating = avgByID[int(sneakers[i].ID)]
	}
}

func GetSneakers(ctx *gin.Context) {
	cacheKey := "sneakers:" + ctx.Request.URL.RawQuery
	var cached gin.H
	if utils.CacheGet(cacheKey, &cached) {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.Sneaker{}).
		Preload("Images").
		Preload("Brand").
		Preload("Category")
	query = applySneakerFilters(ctx, query)

	var sneakers []models.Sneaker
	result := query.Order("sneakers.created_at desc").Limit(limit).Offset(offset).Find(&sneakers)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch sneakers", result.Error)
		return
	}

	attachAvgRatings(sneakers)

	var count int64
	countQuery := applySneakerFilters(ctx, initializers.DB.Model(&models.Sneaker{}))
	countQuery.Count(&count)

	response := gin.H{
		"sneakers": sneakers,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	}

	if err := utils.CacheSet(cacheKey, response, sneakerCacheTTL); err != nil {
		log.Println("Failed to cache sneaker listing:", err)
	}

	ctx.JSON(http.StatusOK, response)
}

func GetSneaker(ctx *gin.Context) {
	sneakerId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sneaker ID", err)
		return
	}

	var sneaker models.Sneaker
	result := initializers.DB.
		Preload("Images").
		Preload("Brand").
		Preload("Category").
		Preload("Stock").
		Preload("Stock.Size").
		Preload("Reviews").
		First(&sneaker, sneakerId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Sneaker not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve sneaker", result.Error)
		}
		return
	}

	attachAvgRatings([]models.Sneaker{sneaker})
	ctx.JSON(http.StatusOK, sneaker)
}

func UpdateSneaker(ctx *gin.Context) {
	sneakerId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sneaker ID", err)
		return
	}

	var sneaker models.Sneaker
	if err := initializers.DB.First(&sneaker, sneakerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Sneaker not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve sneaker", err)
		}
		return
	}

	var updates models.Sneaker
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&sneaker).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update sneaker", err)
		return
	}

	invalidateSneakerCache()
	ctx.JSON(http.StatusOK, sneaker)
}

// DeleteSneaker removes a sneaker together with its stock rows, images,
// reviews and any cart lines referencing it. The cascade is explicit and
// runs inside one transaction.
func DeleteSneaker(ctx *gin.Context) {
	sneakerId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sneaker ID", err)
		return
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, target := range []any{
		&models.Stock{}, &models.SneakerImage{}, &models.Review{}, &models.CartLine{},
	} {
		if err := tx.Where("sneaker_id = ?", sneakerId).Delete(target).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete sneaker data", err)
			return
		}
	}

	if err := tx.Delete(&models.Sneaker{}, sneakerId).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete sneaker", err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete sneaker", err)
		return
	}

	invalidateSneakerCache()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Sneaker deleted successfully."})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadSneakerImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	sneakerIdStr := ctx.PostForm("sneakerId")
	if sneakerIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing sneakerId", nil)
		return
	}

	sneakerId, err := strconv.Atoi(sneakerIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sneakerId", err)
		return
	}

	var sneaker models.Sneaker
	if err := initializers.DB.First(&sneaker, sneakerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Sneaker not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate sneaker", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucketName := os.Getenv("S3_BUCKET")
	if bucketName == "" {
		bucketName = "bestsneakers"
	}
	bucket := aws.String(bucketName)

	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Unique key to prevent overwrites
		uniqueFilename := fmt.Sprintf("%d-%s-%s", sneakerId, time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      bucket,
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)

		sneakerImage := models.SneakerImage{
			SneakerID: sneakerId,
			Url:       result.Location,
		}
		if err := initializers.DB.Create(&sneakerImage).Error; err != nil {
			// File is already in the bucket; keep going and log the miss.
			log.Printf("Error saving image to database: %v", err)
		}
	}

	invalidateSneakerCache()

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}
