// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"time"

	"github.com/lib/pq"
)

const TableNameUserProfiles = "user_profiles"

// UserProfile holds onboarding data and the names of uploaded videos
type UserProfile struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	UserID    string `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	FirstName string `gorm:"column:first_name;not null;default:''" json:"first_name"`
	LastName  string `gorm:"column:last_name;not null;default:''" json:"last_name"`
	FullName  string `gorm:"column:full_name;not null;default:''" json:"full_name"`
	City      string `gorm:"column:city;not null;default:''" json:"city"`
	State     string `gorm:"column:state;not null;default:''" json:"state"`
	Country   string `gorm:"column:country;not null;default:''" json:"country"`

	Longitude *float64 `gorm:"column:longitude" json:"longitude"`
	Latitude  *float64 `gorm:"column:latitude" json:"latitude"`
	PlotSize  float64  `gorm:"column:plot_size;not null;default:0" json:"plot_size"`

	OnboardingComplete bool `gorm:"column:onboarding_complete;not null;default:false" json:"onboarding_complete"`

	// Object names in the videos bucket, in upload order
	Videos pq.StringArray `gorm:"column:videos;type:text[];not null;default:'{}'" json:"videos"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (*UserProfile) TableName() string {
	return TableNameUserProfiles
}

// HasVideo reports whether name is already attached to the profile
func (p *UserProfile) HasVideo(name string) bool {
	for _, v := range p.Videos {
		if v == name {
			return true
		}
	}
	return false
}
