// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package profile

import (
	"strconv"

	"github.com/farmflight/farmflight/pkg/assistant"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/weather"
)

// FarmContext builds the chat farm context from a profile and optional current weather
func FarmContext(p *model.UserProfile, current *weather.Current) assistant.FarmContext {
	var fc assistant.FarmContext
	if p != nil {
		fc.City = p.City
		fc.State = p.State
		fc.Country = p.Country
		fc.Latitude = p.Latitude
		fc.Longitude = p.Longitude
		if p.PlotSize > 0 {
			size := p.PlotSize
			fc.PlotSize = &size
		}
	}
	if current != nil {
		temp := current.Temperature
		fc.Weather = &assistant.WeatherContext{
			Temperature:     &temp,
			TemperatureUnit: current.TemperatureUnit,
			Condition:       current.Condition,
			WindSpeed:       current.WindSpeed,
			WindDirection:   current.WindDirection,
		}
	}
	return fc
}

// Coordinates returns the profile's lat,long as query strings
func Coordinates(p *model.UserProfile) (lat, long string, ok bool) {
	if p == nil || p.Latitude == nil || p.Longitude == nil {
		return "", "", false
	}
	return strconv.FormatFloat(*p.Latitude, 'f', -1, 64), strconv.FormatFloat(*p.Longitude, 'f', -1, 64), true
}
