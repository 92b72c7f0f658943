// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"errors"
	"time"

	"github.com/farmflight/farmflight/pkg/database/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserProfileFacadeInterface defines the interface for user profile operations
type UserProfileFacadeInterface interface {
	GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	Create(ctx context.Context, profile *model.UserProfile) error
	AppendVideo(ctx context.Context, userID, name string) error
	RemoveVideo(ctx context.Context, userID, name string) error
}

// UserProfileFacade implements UserProfileFacadeInterface
type UserProfileFacade struct {
	db *gorm.DB
}

var _ UserProfileFacadeInterface = (*UserProfileFacade)(nil)

// NewUserProfileFacade creates a new UserProfileFacade
func NewUserProfileFacade(db *gorm.DB) *UserProfileFacade {
	return &UserProfileFacade{db: db}
}

// GetByUserID returns the profile for userID, or nil when none exists
func (f *UserProfileFacade) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := f.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create inserts a profile. Returns ErrDuplicate if the user already has one.
func (f *UserProfileFacade) Create(ctx context.Context, profile *model.UserProfile) error {
	if profile.Videos == nil {
		profile.Videos = []string{}
	}
	err := f.db.WithContext(ctx).Create(profile).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// AppendVideo adds name to the user's videos unless it is already present
func (f *UserProfileFacade) AppendVideo(ctx context.Context, userID, name string) error {
	result := f.db.WithContext(ctx).Exec(
		`UPDATE user_profiles SET videos = array_append(videos, ?), updated_at = ?
		 WHERE user_id = ? AND NOT (? = ANY(videos))`,
		name, time.Now(), userID, name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return f.ensureExists(ctx, userID)
	}
	return nil
}

// RemoveVideo drops every occurrence of name from the user's videos
func (f *UserProfileFacade) RemoveVideo(ctx context.Context, userID, name string) error {
	result := f.db.WithContext(ctx).Exec(
		`UPDATE user_profiles SET videos = array_remove(videos, ?), updated_at = ? WHERE user_id = ?`,
		name, time.Now(), userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ensureExists distinguishes "already attached" from "no such profile"
func (f *UserProfileFacade) ensureExists(ctx context.Context, userID string) error {
	var count int64
	if err := f.db.WithContext(ctx).Model(&model.UserProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
