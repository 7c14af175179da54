package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	favoriteshttpmapper "github.com/Apurer/storefront-api/internal/domains/favorites/adapters/http/mapper"
	favoritesports "github.com/Apurer/storefront-api/internal/domains/favorites/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// FavoriteStatus answers whether a product is favorited.
type FavoriteStatus struct {
	ProductID int64 `json:"productId"`
	Favorite  bool  `json:"favorite"`
}

// FavoritesAPI serves the session favorites list.
type FavoritesAPI struct {
	service favoritesports.Service
}

// NewFavoritesAPI creates a FavoritesAPI backed by the provided service.
func NewFavoritesAPI(service favoritesports.Service) FavoritesAPI {
	return FavoritesAPI{service: service}
}

// Get /v1/favorites
func (api *FavoritesAPI) ListFavorites(c *gin.Context) {
	view, err := api.service.List(c.Request.Context(), SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoriteshttpmapper.FromView(view))
}

// Post /v1/favorites/toggle
func (api *FavoritesAPI) ToggleFavorite(c *gin.Context) {
	var payload favoriteshttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	result, view, err := api.service.Toggle(c.Request.Context(), SessionID(c), favoriteshttpmapper.ToDomainItem(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoriteshttpmapper.ToggleResponse{
		Result:    string(result),
		Favorites: favoriteshttpmapper.FromView(view),
	})
}

// Get /v1/favorites/:productId
func (api *FavoritesAPI) GetFavorite(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	favorite, err := api.service.IsFavorite(c.Request.Context(), SessionID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FavoriteStatus{ProductID: id, Favorite: favorite})
}

// Put /v1/favorites/:productId
// Favoriting a product twice keeps the original entry.
func (api *FavoritesAPI) AddFavorite(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload favoriteshttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if payload.ID == 0 {
		payload.ID = id
	}
	if payload.ID != id {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("product id in body does not match path"))
		return
	}
	view, err := api.service.Favorite(c.Request.Context(), SessionID(c), favoriteshttpmapper.ToDomainItem(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoriteshttpmapper.FromView(view))
}

// Delete /v1/favorites/:productId
func (api *FavoritesAPI) RemoveFavorite(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	view, err := api.service.Unfavorite(c.Request.Context(), SessionID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoriteshttpmapper.FromView(view))
}

// Delete /v1/favorites
func (api *FavoritesAPI) ClearFavorites(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
