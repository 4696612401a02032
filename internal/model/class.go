package model

import (
	"strings"
	"time"
)

const (
	ClassLevelBeginner     = "beginner"
	ClassLevelIntermediate = "intermediate"
	ClassLevelAdvanced     = "advanced"
)

const (
	ClassStatusActive    = "active"
	ClassStatusInactive  = "inactive"
	ClassStatusFull      = "full"
	ClassStatusCancelled = "cancelled"
)

type ClassSchedule struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"` // "15:00"
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"` // в минутах
}

type Class struct {
	ID                int64         `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	TeacherID         int64         `json:"teacher_id"`
	TeacherName       string        `json:"teacher_name"`
	Schedule          ClassSchedule `json:"schedule"`
	Capacity          int           `json:"capacity"`
	CurrentEnrollment int           `json:"current_enrollment"`
	Price             float64       `json:"price"`
	Level             string        `json:"level"`
	Status            string        `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
}

func (c *Class) HasLevel(level string) bool {
	return strings.EqualFold(c.Level, level)
}

// SeatsLeft is never negative even when the class is overbooked.
func (c *Class) SeatsLeft() int {
	if c.CurrentEnrollment >= c.Capacity {
		return 0
	}
	return c.Capacity - c.CurrentEnrollment
}

func (c Class) Clone() Class {
	return c
}

type ClassPatch struct {
	Name              *string        `json:"name"`
	Description       *string        `json:"description"`
	TeacherID         *int64         `json:"teacher_id"`
	TeacherName       *string        `json:"teacher_name"`
	Schedule          *ClassSchedule `json:"schedule"`
	Capacity          *int           `json:"capacity"`
	CurrentEnrollment *int           `json:"current_enrollment"`
	Price             *float64       `json:"price"`
	Level             *string        `json:"level"`
	Status            *string        `json:"status"`
}

func (p ClassPatch) Apply(c *Class) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.TeacherID != nil {
		c.TeacherID = *p.TeacherID
	}
	if p.TeacherName != nil {
		c.TeacherName = *p.TeacherName
	}
	if p.Schedule != nil {
		c.Schedule = *p.Schedule
	}
	if p.Capacity != nil {
		c.Capacity = *p.Capacity
	}
	if p.CurrentEnrollment != nil {
		c.CurrentEnrollment = *p.CurrentEnrollment
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}
