package controllers

import (
	"net/http"
	"strconv"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
)

func CreateBrand(ctx *gin.Context) {
	var brand models.Brand
	if err := ctx.ShouldBindJSON(&brand); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := initializers.DB.Create(&brand).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create brand", err)
		return
	}
	ctx.JSON(http.StatusCreated, brand)
}

func GetBrands(ctx *gin.Context) {
	var brands []models.Brand
	if result := initializers.DB.Order("name").Find(&brands); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch brands", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brands": brands})
}

func DeleteBrand(ctx *gin.Context) {
	brandId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid brand ID", err)
		return
	}
	if result := initializers.DB.Delete(&models.Brand{}, brandId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete brand", result.Error)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Brand deleted successfully."})
}

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Order("name").Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func DeleteCategory(ctx *gin.Context) {
	categoryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
		return
	}
	if result := initializers.DB.Delete(&models.Category{}, categoryId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", result.Error)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}

func CreateSize(ctx *gin.Context) {
	var size models.Size
	if err := ctx.ShouldBindJSON(&size); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := initializers.DB.Create(&size).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create size", err)
		return
	}
	ctx.JSON(http.StatusCreated, size)
}

func GetSizes(ctx *gin.Context) {
	var sizes []models.Size
	if result := initializers.DB.Order("value").Find(&sizes); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch sizes", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sizes": sizes})
}

func CreateBanner(ctx *gin.Context) {
	var banner models.MainBanner
	if err := ctx.ShouldBindJSON(&banner); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := initializers.DB.Create(&banner).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create banner", err)
		return
	}
	ctx.JSON(http.StatusCreated, banner)
}

func GetBanners(ctx *gin.Context) {
	var banners []models.MainBanner
	if result := initializers.DB.Where("is_active = ?", true).Order("created_at desc").Find(&banners); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch banners", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"banners": banners})
}

func DeleteBanner(ctx *gin.Context) {
	bannerId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid banner ID", err)
		return
	}
	if result := initializers.DB.Delete(&models.MainBanner{}, bannerId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete banner", result.Error)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Banner deleted successfully."})
}
