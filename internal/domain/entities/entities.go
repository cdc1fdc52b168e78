package entities

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Common errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrRevisionMismatch   = errors.New("document revision mismatch")
)

// Enums and types
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type SocialPlatform string

const (
	SocialGithub    SocialPlatform = "github"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialTwitter   SocialPlatform = "twitter"
	SocialWebsite   SocialPlatform = "website"
	SocialFacebook  SocialPlatform = "facebook"
	SocialInstagram SocialPlatform = "instagram"
	SocialDribbble  SocialPlatform = "dribbble"
)

// SocialPlatforms lists every platform a team member profile may link to.
var SocialPlatforms = []SocialPlatform{
	SocialGithub,
	SocialLinkedIn,
	SocialTwitter,
	SocialWebsite,
	SocialFacebook,
	SocialInstagram,
	SocialDribbble,
}

// CustomerInfo holds the contact details a customer left with an order
type CustomerInfo struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Message string `json:"message,omitempty" validate:"max=5000"`
}

// Order represents a customer's request for a subscription plan.
// PlanID, PlanName and PlanPrice are a snapshot of the plan at order time.
type Order struct {
	ID           ID           `json:"id" validate:"required"`
	PlanID       int          `json:"planId" validate:"gte=0"`
	PlanName     string       `json:"planName" validate:"required,max=200"`
	PlanPrice    float64      `json:"planPrice" validate:"gte=0"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	Date         time.Time    `json:"date" validate:"required"`
	Status       OrderStatus  `json:"status" validate:"required,order_status"`
}

// NewOrder is the caller-supplied part of an order
type NewOrder struct {
	PlanID       int          `json:"planId" validate:"gte=0"`
	PlanName     string       `json:"planName" validate:"required,max=200"`
	PlanPrice    float64      `json:"planPrice" validate:"gte=0"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

// TeamMember represents one staff profile
type TeamMember struct {
	ID         ID                `json:"id" validate:"required"`
	Name       string            `json:"name" validate:"required,max=120"`
	Role       string            `json:"role" validate:"required,max=120"`
	Experience Years             `json:"experience" validate:"gte=0"`
	Bio        string            `json:"bio" validate:"max=5000"`
	Image      string            `json:"image" validate:"omitempty,image_ref"`
	Social     map[string]string `json:"social" validate:"omitempty,dive,keys,social_platform,endkeys,omitempty,url"`
}

// NewTeamMember is the caller-supplied part of a team member.
// ImageData carries a raw uploaded file; it is never persisted.
type NewTeamMember struct {
	Name       string            `json:"name" validate:"required,max=120"`
	Role       string            `json:"role" validate:"required,max=120"`
	Experience Years             `json:"experience" validate:"gte=0"`
	Bio        string            `json:"bio" validate:"max=5000"`
	Image      string            `json:"image" validate:"omitempty,image_ref"`
	ImageData  []byte            `json:"-"`
	Social     map[string]string `json:"social" validate:"omitempty,dive,keys,social_platform,endkeys,omitempty,url"`
}

// TeamMemberUpdate carries the fields to change on a member; nil fields are left as they are
type TeamMemberUpdate struct {
	Name       *string           `json:"name" validate:"omitempty,min=1,max=120"`
	Role       *string           `json:"role" validate:"omitempty,min=1,max=120"`
	Experience *Years            `json:"experience" validate:"omitempty,gte=0"`
	Bio        *string           `json:"bio" validate:"omitempty,max=5000"`
	Image      *string           `json:"image" validate:"omitempty,image_ref"`
	ImageData  []byte            `json:"-"`
	Social     map[string]string `json:"social" validate:"omitempty,dive,keys,social_platform,endkeys,omitempty,url"`
}

// Document is the single persisted root holding every mutable collection
type Document struct {
	Orders []Order      `json:"orders" validate:"dive"`
	Team   []TeamMember `json:"team" validate:"dive"`
}

// Stats summarizes the document for the admin dashboard
type Stats struct {
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
	CompletedOrders int `json:"completedOrders"`
	CancelledOrders int `json:"cancelledOrders"`
	TeamMembers     int `json:"teamMembers"`
}

// NewDocument returns a document with both collections empty
func NewDocument() *Document {
	return &Document{
		Orders: []Order{},
		Team:   []TeamMember{},
	}
}

// Business logic methods for Document

// Normalize replaces missing collections with empty ones
func (d *Document) Normalize() {
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	if d.Team == nil {
		d.Team = []TeamMember{}
	}
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	clone := &Document{
		Orders: make([]Order, len(d.Orders)),
		Team:   make([]TeamMember, len(d.Team)),
	}
	copy(clone.Orders, d.Orders)
	for i, member := range d.Team {
		clone.Team[i] = member.Clone()
	}
	return clone
}

func (d *Document) OrderIndex(id ID) int {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) MemberIndex(id ID) int {
	for i := range d.Team {
		if d.Team[i].ID == id {
			return i
		}
	}
	return -1
}

// NextMemberID returns one more than the highest member id in use
func (d *Document) NextMemberID() ID {
	var highest ID
	for _, member := range d.Team {
		if member.ID > highest {
			highest = member.ID
		}
	}
	return highest + 1
}

// Stats counts orders per status and team members
func (d *Document) Stats() Stats {
	stats := Stats{
		TotalOrders: len(d.Orders),
		TeamMembers: len(d.Team),
	}
	for _, order := range d.Orders {
		switch order.Status {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusCompleted:
			stats.CompletedOrders++
		case OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}
	return stats
}

// Business logic methods for TeamMember

func (m TeamMember) Clone() TeamMember {
	if m.Social != nil {
		social := make(map[string]string, len(m.Social))
		for k, v := range m.Social {
			social[k] = v
		}
		m.Social = social
	}
	return m
}

// Apply merges the non-nil fields of the update into the member
func (m *TeamMember) Apply(update TeamMemberUpdate) {
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Role != nil {
		m.Role = *update.Role
	}
	if update.Experience != nil {
		m.Experience = *update.Experience
	}
	if update.Bio != nil {
		m.Bio = *update.Bio
	}
	if update.Image != nil {
		m.Image = *update.Image
	}
	if update.Social != nil {
		m.Social = CompactSocial(update.Social)
	}
}

// CompactSocial drops empty profile links; the result is never nil
func CompactSocial(social map[string]string) map[string]string {
	compact := make(map[string]string, len(social))
	for platform, link := range social {
		if link = strings.TrimSpace(link); link != "" {
			compact[platform] = link
		}
	}
	return compact
}

// Utility methods
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseOrderStatus returns ErrInvalidStatus for anything but a known status
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (p SocialPlatform) IsValid() bool {
	for _, known := range SocialPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// IsImageReference reports whether s is an http(s) URL or an embedded data:image payload
func IsImageReference(s string) bool {
	if strings.HasPrefix(s, "data:image/") {
		return strings.Contains(s, ";base64,")
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
