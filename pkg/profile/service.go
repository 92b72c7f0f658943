// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/farmflight/farmflight/pkg/database"
	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/farmflight/farmflight/pkg/logger/log"
)

// ValidationError is a rejected onboarding field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// OnboardingRequest is the onboarding form. PlotSize accepts a JSON number or numeric string.
type OnboardingRequest struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	City      string      `json:"city"`
	State     string      `json:"state"`
	Country   string      `json:"country"`
	PlotSize  json.Number `json:"plot_size"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
}

func (r *OnboardingRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.Country = strings.TrimSpace(r.Country)
}

// Validate checks required fields and returns the parsed plot size
func (r *OnboardingRequest) Validate() (float64, error) {
	r.normalize()
	if r.FirstName == "" || r.LastName == "" || r.City == "" || r.State == "" || r.Country == "" {
		return 0, &ValidationError{Message: "Please fill out all required fields"}
	}
	plotSize, err := strconv.ParseFloat(strings.TrimSpace(r.PlotSize.String()), 64)
	if err != nil || plotSize <= 0 {
		return 0, &ValidationError{Message: "Plot size must be a valid number"}
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return 0, &ValidationError{Message: "Latitude must be between -90 and 90"}
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return 0, &ValidationError{Message: "Longitude must be between -180 and 180"}
	}
	return plotSize, nil
}

// Complete reports whether p has finished onboarding. A missing profile is incomplete.
func Complete(p *model.UserProfile) bool {
	return p != nil && p.OnboardingComplete
}

// Service manages user profiles
type Service struct {
	profiles database.UserProfileFacadeInterface
}

func NewService(profiles database.UserProfileFacadeInterface) *Service {
	return &Service{profiles: profiles}
}

// Get returns userID's profile or database.ErrNotFound
func (s *Service) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, database.ErrNotFound
	}
	return p, nil
}

// Onboard validates req and creates userID's profile.
// A second submission for the same user returns database.ErrDuplicate.
func (s *Service) Onboard(ctx context.Context, userID string, req OnboardingRequest) (*model.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("user not authenticated")
	}
	plotSize, err := req.Validate()
	if err != nil {
		return nil, err
	}

	p := &model.UserProfile{
		UserID:             userID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		FullName:           req.FirstName + " " + req.LastName,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		PlotSize:           plotSize,
		OnboardingComplete: true,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	log.Infof("Onboarded user %s (%s, %s)", userID, p.City, p.Country)
	return p, nil
}
