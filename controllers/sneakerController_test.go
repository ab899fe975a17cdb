package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sneakerListResponse struct {
	Sneakers []models.Sneaker `json:"sneakers"`
	Metadata struct {
		Total int `json:"total"`
	} `json:"metadata"`
}

func setupCatalogTest(t *testing.T) *gin.Engine {
	t.Helper()
	server := setupHandlerTest(t)
	server.GET("/sneakers", GetSneakers)
	server.GET("/sneakers/:id", GetSneaker)
	db := initializers.DB

	nike := models.Brand{Name: "Nike"}
	adidas := models.Brand{Name: "Adidas"}
	require.NoError(t, db.Create(&nike).Error)
	require.NoError(t, db.Create(&adidas).Error)

	running := models.Category{Name: "Running", Slug: "running"}
	casual := models.Category{Name: "Casual", Slug: "casual"}
	require.NoError(t, db.Create(&running).Error)
	require.NoError(t, db.Create(&casual).Error)

	size := models.Size{Value: 42}
	require.NoError(t, db.Create(&size).Error)

	pegasus := models.Sneaker{Name: "Pegasus", BrandID: int(nike.ID), CategoryID: int(running.ID), Price: 120, Gender: "M", Color: "Black"}
	samba := models.Sneaker{Name: "Samba", BrandID: int(adidas.ID), CategoryID: int(casual.ID), Price: 90, Gender: "U", Color: "White"}
	vaporfly := models.Sneaker{Name: "Vaporfly", BrandID: int(nike.ID), CategoryID: int(running.ID), Price: 250, Gender: "F", Color: "Green"}
	for _, s := range []*models.Sneaker{&pegasus, &samba, &vaporfly} {
		require.NoError(t, db.Create(s).Error)
	}

	// Pegasus is in stock, the others are not.
	require.NoError(t, db.Create(&models.Stock{SneakerID: int(pegasus.ID), SizeID: int(size.ID), Quantity: 5}).Error)
	require.NoError(t, db.Create(&models.Stock{SneakerID: int(samba.ID), SizeID: int(size.ID), Quantity: 0}).Error)

	return server
}

func listSneakers(t *testing.T, server *gin.Engine, query string) sneakerListResponse {
	t.Helper()
	w := doJSONRequest(server, http.MethodGet, "/sneakers"+query, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response sneakerListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func sneakerNames(response sneakerListResponse) []string {
	names := make([]string, 0, len(response.Sneakers))
	for _, s := range response.Sneakers {
		names = append(names, s.Name)
	}
	return names
}

func TestGetSneakersReturnsAll(t *testing.T) {
	server := setupCatalogTest(t)

	response := listSneakers(t, server, "")
	assert.Len(t, response.Sneakers, 3)
	assert.Equal(t, 3, response.Metadata.Total)
}

func TestGetSneakersFilterByBrand(t *testing.T) {
	server := setupCatalogTest(t)

	response := listSneakers(t, server, "?brand=nike")
	names := sneakerNames(response)
	assert.ElementsMatch(t, []string{"Pegasus", "Vaporfly"}, names)
}

func TestGetSneakersFilterByCategorySlug(t *testing.T) {
	server := setupCatalogTest(t)

	response := listSneakers(t, server, "?category=casual")
	assert.Equal(t, []string{"Samba"}, sneakerNames(response))
}

func TestGetSneakersFilterByPriceRange(t *testing.T) {
	server := setupCatalogTest(t)

	response := listSneakers(t, server, "?price_min=100&price_max=200")
	assert.Equal(t, []string{"Pegasus"}, sneakerNames(response))
}

func TestGetSneakersAvailableOnly(t *testing.T) {
	server := setupCatalogTest(t)

	response := listSneakers(t, server, "?available=true")
	assert.Equal(t, []string{"Pegasus"}, sneakerNames(response))
}

func TestGetSneakersFilterBySize(t *testing.T) {
	server := setupCatalogTest(t)

	response := listSneakers(t, server, "?size=42")
	assert.ElementsMatch(t, []string{"Pegasus", "Samba"}, sneakerNames(response))
}

func TestGetSneakerDetailIncludesStock(t *testing.T) {
	server := setupCatalogTest(t)

	var pegasus models.Sneaker
	require.NoError(t, initializers.DB.Where("name = ?", "Pegasus").First(&pegasus).Error)

	w := doJSONRequest(server, http.MethodGet, fmt.Sprintf("/sneakers/%d", pegasus.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail models.Sneaker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Pegasus", detail.Name)
	require.Len(t, detail.Stock, 1)
	assert.Equal(t, 5, detail.Stock[0].Quantity)
}

func TestGetSneakerNotFound(t *testing.T) {
	server := setupCatalogTest(t)

	w := doJSONRequest(server, http.MethodGet, "/sneakers/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
