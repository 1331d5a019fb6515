package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parcelio/shipping-api/internal/usecase"
)

type CountryHandler struct {
	countries usecase.CountryRepository
}

func NewCountryHandler(countries usecase.CountryRepository) *CountryHandler {
	return &CountryHandler{countries: countries}
}

type countryResp struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (h *CountryHandler) ListActive(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	all, err := h.countries.FindAllActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]countryResp, 0, len(all))
	for _, country := range all {
		out = append(out, countryResp{Code: country.Code(), Name: country.Name(), Active: country.Active()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CountryHandler) GetByCode(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	country, err := h.countries.FindByCode(ctx, c.Param("code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if country == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, countryResp{Code: country.Code(), Name: country.Name(), Active: country.Active()})
}
