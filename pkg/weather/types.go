// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package weather

// MaxForecastPeriods caps the periods returned by Forecast
const MaxForecastPeriods = 20

// Current is the first forecast period, as shown on the dashboard
type Current struct {
	Temperature      float64 `json:"temperature"`
	TemperatureUnit  string  `json:"temperatureUnit"`
	Condition        string  `json:"condition"`
	WindSpeed        string  `json:"windSpeed"`
	WindDirection    string  `json:"windDirection"`
	Icon             string  `json:"icon"`
	Name             string  `json:"name"`
	DetailedForecast string  `json:"detailedForecast"`
}

// Period is one entry of the extended forecast
type Period struct {
	Name                     string  `json:"name"`
	StartTime                string  `json:"startTime"`
	EndTime                  string  `json:"endTime"`
	Temperature              float64 `json:"temperature"`
	TemperatureUnit          string  `json:"temperatureUnit"`
	WindSpeed                string  `json:"windSpeed"`
	WindDirection            string  `json:"windDirection"`
	Icon                     string  `json:"icon"`
	ShortForecast            string  `json:"shortForecast"`
	DetailedForecast         string  `json:"detailedForecast"`
	IsDaytime                bool    `json:"isDaytime"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
}

type upstreamValue struct {
	Value *float64 `json:"value"`
}

type upstreamPeriod struct {
	Name                       string         `json:"name"`
	StartTime                  string         `json:"startTime"`
	EndTime                    string         `json:"endTime"`
	Temperature                float64        `json:"temperature"`
	TemperatureUnit            string         `json:"temperatureUnit"`
	WindSpeed                  string         `json:"windSpeed"`
	WindDirection              string         `json:"windDirection"`
	Icon                       string         `json:"icon"`
	ShortForecast              string         `json:"shortForecast"`
	DetailedForecast           string         `json:"detailedForecast"`
	IsDaytime                  bool           `json:"isDaytime"`
	ProbabilityOfPrecipitation *upstreamValue `json:"probabilityOfPrecipitation"`
}

type upstreamForecast struct {
	Periods []upstreamPeriod `json:"periods"`
}

func (p upstreamPeriod) current() Current {
	return Current{
		Temperature:      p.Temperature,
		TemperatureUnit:  p.TemperatureUnit,
		Condition:        p.ShortForecast,
		WindSpeed:        p.WindSpeed,
		WindDirection:    p.WindDirection,
		Icon:             p.Icon,
		Name:             p.Name,
		DetailedForecast: p.DetailedForecast,
	}
}

func (p upstreamPeriod) period() Period {
	var precipitation float64
	if p.ProbabilityOfPrecipitation != nil && p.ProbabilityOfPrecipitation.Value != nil {
		precipitation = *p.ProbabilityOfPrecipitation.Value
	}
	return Period{
		Name:                     p.Name,
		StartTime:                p.StartTime,
		EndTime:                  p.EndTime,
		Temperature:              p.Temperature,
		TemperatureUnit:          p.TemperatureUnit,
		WindSpeed:                p.WindSpeed,
		WindDirection:            p.WindDirection,
		Icon:                     p.Icon,
		ShortForecast:            p.ShortForecast,
		DetailedForecast:         p.DetailedForecast,
		IsDaytime:                p.IsDaytime,
		PrecipitationProbability: precipitation,
	}
}
