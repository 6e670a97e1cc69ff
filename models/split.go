package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Split modes determine how an item's effective price is divided among its
// assigned members.
const (
	SplitModeEqual    = "equal"
	SplitModeRatio    = "ratio"
	SplitModeQuantity = "quantity"
)

// Split statuses
const (
	SplitStatusDraft     = "draft"
	SplitStatusCompleted = "completed"
	SplitStatusPaid      = "paid"
)

// Split is one receipt being divided among members.
type Split struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID     `gorm:"type:uuid;index" json:"-"`
	Name       string        `gorm:"size:255" json:"name"`
	StoreName  string        `gorm:"size:255" json:"store_name,omitempty"`
	Region     string        `gorm:"size:10" json:"region,omitempty"`
	Status     string        `gorm:"not null;size:20;default:draft" json:"status"` // draft, completed, paid
	PayerID    *uuid.UUID    `gorm:"type:uuid" json:"payer_id,omitempty"`
	ImageURL   string        `json:"image_url,omitempty"`
	Subtotal   float64       `gorm:"type:decimal(12,2)" json:"subtotal"`
	TotalTax   float64       `gorm:"type:decimal(12,2)" json:"total_tax"`
	Total      float64       `gorm:"type:decimal(12,2)" json:"total"`
	Items      []Item        `gorm:"foreignKey:SplitID" json:"items,omitempty"`
	Members    []SplitMember `gorm:"foreignKey:SplitID" json:"members,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (s *Split) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SplitMember links a member to a split, in input order, and carries the
// payment flag echoed into member totals.
type SplitMember struct {
	SplitID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"split_id"`
	MemberID uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
	Member   Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Position int       `gorm:"not null;default:0" json:"position"`
	IsPaid   bool      `gorm:"default:false" json:"is_paid"`
}

// Item is one receipt line with its split mode and assignments.
type Item struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	SplitID     uuid.UUID    `gorm:"type:uuid;index" json:"split_id"`
	Name        string       `gorm:"not null;size:255" json:"name"`
	Price       float64      `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity    int          `gorm:"default:1" json:"quantity"`
	HasTax      bool         `gorm:"default:false" json:"has_tax"`
	TaxAmount   *float64     `gorm:"type:decimal(12,2)" json:"tax_amount,omitempty"`
	Discount    *float64     `gorm:"type:decimal(12,2)" json:"discount,omitempty"`
	Deposit     *float64     `gorm:"type:decimal(12,2)" json:"deposit,omitempty"`
	SplitMode   string       `gorm:"size:20;default:equal" json:"split_mode"`
	Assignments []Assignment `gorm:"foreignKey:ItemID" json:"assignments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// AfterFind defaults rows that predate the split-mode column so legacy splits
// load as equal-mode items with no assignments.
func (i *Item) AfterFind(tx *gorm.DB) error {
	if i.SplitMode == "" {
		i.SplitMode = SplitModeEqual
	}
	if i.Assignments == nil {
		i.Assignments = []Assignment{}
	}
	return nil
}

// Assignment is one member's claim on an item. Ratio is only meaningful in
// ratio mode, Quantity only in quantity mode.
type Assignment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_item_member" json:"item_id"`
	MemberID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_item_member" json:"member_id"`
	Ratio    *float64  `json:"ratio,omitempty"`
	Quantity *int      `json:"quantity,omitempty"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SchemaMigration tracks applied data-backfill versions.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// Request structs
type CreateSplitRequest struct {
	StoreName string             `json:"store_name"`
	Region    string             `json:"region"`
	ImageURL  string             `json:"image_url"`
	Members   []string           `json:"members"` // member IDs, order preserved
	PayerID   string             `json:"payer_id"`
	Items     []ReceiptItemInput `json:"items"`
}

type UpdateSplitRequest struct {
	Name      string `json:"name"`
	StoreName string `json:"store_name"`
	Region    string `json:"region"`
	Status    string `json:"status" binding:"omitempty,oneof=draft completed paid"`
	PayerID   string `json:"payer_id"`
}

type ItemRequest struct {
	Name      string   `json:"name" binding:"required"`
	Price     float64  `json:"price" binding:"gte=0"`
	Quantity  int      `json:"quantity" binding:"omitempty,gt=0"`
	HasTax    bool     `json:"has_tax"`
	TaxAmount *float64 `json:"tax_amount" binding:"omitempty,gte=0"`
	Discount  *float64 `json:"discount" binding:"omitempty,gte=0"`
	Deposit   *float64 `json:"deposit" binding:"omitempty,gte=0"`
}

type SetSplitModeRequest struct {
	SplitMode string `json:"split_mode" binding:"required,oneof=equal ratio quantity"`
}

type AssignRequest struct {
	MemberID string   `json:"member_id" binding:"required"`
	Ratio    *float64 `json:"ratio" binding:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" binding:"omitempty,gt=0"`
}

type MarkPaidRequest struct {
	IsPaid bool `json:"is_paid"`
}

// Response structs
type SplitResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	StoreName string        `json:"store_name,omitempty"`
	Region    string        `json:"region,omitempty"`
	Status    string        `json:"status"`
	PayerID   *uuid.UUID    `json:"payer_id,omitempty"`
	ImageURL  string        `json:"image_url,omitempty"`
	Subtotal  float64       `json:"subtotal"`
	TotalTax  float64       `json:"total_tax"`
	Total     float64       `json:"total"`
	Items     []Item        `json:"items"`
	Members   []SplitMember `json:"members"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type SplitSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StoreName   string    `json:"store_name,omitempty"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"item_count"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type MonthlyStats struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Items int     `json:"items"`
}
