// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProfiles struct {
	getFunc    func(ctx context.Context, userID string) (*model.UserProfile, error)
	createFunc func(ctx context.Context, p *model.UserProfile) error
	created    *model.UserProfile
}

func (m *mockProfiles) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	if m.getFunc == nil {
		return nil, nil
	}
	return m.getFunc(ctx, userID)
}

func (m *mockProfiles) Create(ctx context.Context, p *model.UserProfile) error {
	m.created = p
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, p)
}

func (m *mockProfiles) AppendVideo(ctx context.Context, userID, name string) error { return nil }
func (m *mockProfiles) RemoveVideo(ctx context.Context, userID, name string) error { return nil }

func f64(v float64) *float64 { return &v }

func validRequest() OnboardingRequest {
	return OnboardingRequest{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		City:      "Evanston",
		State:     "IL",
		Country:   "USA",
		PlotSize:  json.Number("50"),
		Latitude:  f64(42.0451),
		Longitude: f64(-87.6877),
	}
}

func TestOnboard(t *testing.T) {
	m := &mockProfiles{}
	s := NewService(m)

	p, err := s.Onboard(context.Background(), "u-1", validRequest())
	require.NoError(t, err)

	assert.Same(t, m.created, p)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, 50.0, p.PlotSize)
	assert.True(t, p.OnboardingComplete)
	assert.Equal(t, 42.0451, *p.Latitude)
}

func TestOnboard_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *OnboardingRequest)
		msg    string
	}{
		{"missing first name", func(r *OnboardingRequest) { r.FirstName = "  " }, "Please fill out all required fields"},
		{"missing country", func(r *OnboardingRequest) { r.Country = "" }, "Please fill out all required fields"},
		{"plot size not a number", func(r *OnboardingRequest) { r.PlotSize = "lots" }, "Plot size must be a valid number"},
		{"plot size empty", func(r *OnboardingRequest) { r.PlotSize = "" }, "Plot size must be a valid number"},
		{"plot size zero", func(r *OnboardingRequest) { r.PlotSize = "0" }, "Plot size must be a valid number"},
		{"latitude out of range", func(r *OnboardingRequest) { r.Latitude = f64(91) }, "Latitude must be between -90 and 90"},
		{"longitude out of range", func(r *OnboardingRequest) { r.Longitude = f64(-181) }, "Longitude must be between -180 and 180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockProfiles{}
			req := validRequest()
			tt.mutate(&req)

			_, err := NewService(m).Onboard(context.Background(), "u-1", req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.Message)
			assert.Nil(t, m.created)
		})
	}
}

func TestOnboard_PlotSizeFromJSONString(t *testing.T) {
	var req OnboardingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"A","last_name":"B","city":"C","state":"D","country":"E","plot_size":"12.5"}`), &req))

	p, err := NewService(&mockProfiles{}).Onboard(context.Background(), "u-1", req)
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.PlotSize)
	assert.Nil(t, p.Latitude)
}

func TestOnboard_Duplicate(t *testing.T) {
	m := &mockProfiles{createFunc: func(ctx context.Context, p *model.UserProfile) error {
		return database.ErrDuplicate
	}}

	_, err := NewService(m).Onboard(context.Background(), "u-1", validRequest())
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestGet(t *testing.T) {
	s := NewService(&mockProfiles{})
	_, err := s.Get(context.Background(), "u-1")
	assert.ErrorIs(t, err, database.ErrNotFound)

	s = NewService(&mockProfiles{getFunc: func(ctx context.Context, userID string) (*model.UserProfile, error) {
		return nil, errors.New("db down")
	}})
	_, err = s.Get(context.Background(), "u-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, database.ErrNotFound)
}

func TestComplete(t *testing.T) {
	assert.False(t, Complete(nil))
	assert.False(t, Complete(&model.UserProfile{FirstName: "A"}))
	assert.True(t, Complete(&model.UserProfile{OnboardingComplete: true}))
	assert.True(t, Complete(&model.UserProfile{FirstName: "A", OnboardingComplete: true}))
}

func TestFarmContext(t *testing.T) {
	p := &model.UserProfile{City: "Evanston", State: "IL", Country: "USA", PlotSize: 50, Latitude: f64(42.04), Longitude: f64(-87.68)}
	cur := &weather.Current{Temperature: 68, TemperatureUnit: "F", Condition: "Sunny", WindSpeed: "5 mph", WindDirection: "S"}

	fc := FarmContext(p, cur)
	assert.Equal(t, "Evanston", fc.City)
	assert.Equal(t, 50.0, *fc.PlotSize)
	require.NotNil(t, fc.Weather)
	assert.Equal(t, 68.0, *fc.Weather.Temperature)
	assert.Equal(t, "Sunny", fc.Weather.Condition)
	assert.Nil(t, fc.Weather.Humidity)

	empty := FarmContext(nil, nil)
	assert.Nil(t, empty.PlotSize)
	assert.Nil(t, empty.Weather)
}

func TestCoordinates(t *testing.T) {
	lat, long, ok := Coordinates(&model.UserProfile{Latitude: f64(42.04), Longitude: f64(-87.68)})
	require.True(t, ok)
	assert.Equal(t, "42.04", lat)
	assert.Equal(t, "-87.68", long)

	_, _, ok = Coordinates(&model.UserProfile{Latitude: f64(1)})
	assert.False(t, ok)
}
