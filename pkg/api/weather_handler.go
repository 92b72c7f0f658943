// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"
	"strconv"

	"github.com/farmflight/farmflight/pkg/logger/log"
	"github.com/gin-gonic/gin"
)

// coordinates reads lat and long query parameters
func coordinates(c *gin.Context) (string, string, bool) {
	lat, long := c.Query("lat"), c.Query("long")
	if lat == "" || long == "" {
		respondBadRequest(c, "Latitude and longitude are required parameters")
		return "", "", false
	}
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		respondInvalidParameter(c, "lat", "must be a number")
		return "", "", false
	}
	if _, err := strconv.ParseFloat(long, 64); err != nil {
		respondInvalidParameter(c, "long", "must be a number")
		return "", "", false
	}
	return lat, long, true
}

// GetWeather returns the current conditions at lat,long
func (h *Handler) GetWeather(c *gin.Context) {
	lat, long, ok := coordinates(c)
	if !ok {
		return
	}
	cur, err := h.Weather.Current(c.Request.Context(), lat, long)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error fetching weather data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgWeatherFailed})
		return
	}
	c.JSON(http.StatusOK, cur)
}

// GetForecast returns the extended forecast at lat,long
func (h *Handler) GetForecast(c *gin.Context) {
	lat, long, ok := coordinates(c)
	if !ok {
		return
	}
	periods, err := h.Weather.Forecast(c.Request.Context(), lat, long)
	if err != nil {
		log.GlobalLogger().WithContext(c).Errorf("Error fetching extended forecast data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgWeatherFailed})
		return
	}
	c.JSON(http.StatusOK, periods)
}
