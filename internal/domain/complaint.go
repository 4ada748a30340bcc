package domain

import (
	"strings"
	"time"
)

// ComplaintCategory classifies what a complaint is about.
type ComplaintCategory string

const (
	CategoryProduct ComplaintCategory = "Product"
	CategoryService ComplaintCategory = "Service"
	CategorySupport ComplaintCategory = "Support"
)

// Valid reports whether c is one of the known categories.
func (c ComplaintCategory) Valid() bool {
	switch c {
	case CategoryProduct, CategoryService, CategorySupport:
		return true
	}
	return false
}

// ComplaintPriority enumerates urgency.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
)

func (p ComplaintPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ComplaintStatus enumerates lifecycle states. Any state may follow any other.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Complaint is the aggregate tracked through the admin dashboard.
type Complaint struct {
	ID            string
	Title         string
	Description   string
	Category      ComplaintCategory
	Priority      ComplaintPriority
	Status        ComplaintStatus
	DateSubmitted time.Time
	LastUpdated   time.Time
}

// ComplaintPatch carries the fields an admin update may change. Nil fields are left as is.
type ComplaintPatch struct {
	Title       *string
	Description *string
	Category    *ComplaintCategory
	Priority    *ComplaintPriority
	Status      *ComplaintStatus
}

// Validate returns per-field problems keyed by JSON field name, or nil.
func (p ComplaintPatch) Validate() map[string]any {
	problems := map[string]any{}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		problems["title"] = "must not be empty"
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		problems["description"] = "must not be empty"
	}
	if p.Category != nil && !p.Category.Valid() {
		problems["category"] = "must be one of Product, Service, Support"
	}
	if p.Priority != nil && !p.Priority.Valid() {
		problems["priority"] = "must be one of Low, Medium, High"
	}
	if p.Status != nil && !p.Status.Valid() {
		problems["status"] = "must be one of Pending, In Progress, Resolved"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ApplyTo copies the present fields onto c.
func (p ComplaintPatch) ApplyTo(c *Complaint) {
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}
