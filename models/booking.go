package models

import "time"

// Booking statuses. Confirmed and rejected are both terminal for the
// status field itself; checked_in_at / checked_out_at are orthogonal
// sub-flags reachable only from confirmed.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
)

// Booking is a guest submission against a unit. The blob-ish fields
// (IDDocument, PaymentProof, SignatureData) are opaque strings — base64
// data URIs or URLs — that the server stores but never interprets.
type Booking struct {
	ID uint `gorm:"primaryKey;column:booking_id" json:"booking_id"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	UnitID uint `gorm:"column:unit_id;index;not null" json:"unit_id"`

	// Guest identity
	GuestName        string  `gorm:"column:guest_name;size:255;not null" json:"guest_name"`
	PermanentAddress *string `gorm:"column:permanent_address;size:255" json:"permanent_address"`
	Age              *string `gorm:"column:age;size:10" json:"age"`
	Nationality      *string `gorm:"column:nationality;size:100" json:"nationality"`
	RelationToOwner  *string `gorm:"column:relation_to_owner;size:100" json:"relation_to_owner"`
	Occupation       *string `gorm:"column:occupation;size:100" json:"occupation"`
	Email            string  `gorm:"column:email;size:255;not null" json:"email"`
	ContactNumber    *string `gorm:"column:contact_number;size:50" json:"contact_number"`
	OwnerName        *string `gorm:"column:owner_name;size:255" json:"owner_name"`
	OwnerContact     *string `gorm:"column:owner_contact;size:50" json:"owner_contact"`

	// Stay
	InclusiveDates *string    `gorm:"column:inclusive_dates;size:255" json:"inclusive_dates"`
	CheckInDate    *time.Time `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate   *time.Time `gorm:"column:check_out_date" json:"check_out_date"`
	PurposeOfStay  *string    `gorm:"column:purpose_of_stay;size:255" json:"purpose_of_stay"`

	// Payment — stored as submitted, never verified.
	PaidYesNo       *string `gorm:"column:paid_yes_no;size:10" json:"paid_yes_no"`
	AmountPaid      *string `gorm:"column:amount_paid;size:50" json:"amount_paid"`
	BookingPlatform *string `gorm:"column:booking_platform;size:100" json:"booking_platform"`
	PaymentMethod   *string `gorm:"column:payment_method;size:100" json:"payment_method"`

	// Evidence blobs (opaque)
	IDDocument    *string `gorm:"column:id_document;type:longtext" json:"id_document,omitempty"`
	PaymentProof  *string `gorm:"column:payment_proof;type:longtext" json:"payment_proof,omitempty"`
	SignatureData *string `gorm:"column:signature_data;type:longtext" json:"signature_data,omitempty"`

	// Lifecycle
	Status          string  `gorm:"column:status;size:20;default:pending" json:"status"`
	RejectionReason *string `gorm:"column:rejection_reason;size:255" json:"rejection_reason"`

	// Late-added columns; reads and writes must survive their absence.
	CheckedInAt         *time.Time `gorm:"column:checked_in_at" json:"checked_in_at"`
	CheckedOutAt        *time.Time `gorm:"column:checked_out_at" json:"checked_out_at"`
	CreatedByEmployeeID *uint      `gorm:"column:created_by_employee_id" json:"created_by_employee_id,omitempty"`

	Unit Unit `gorm:"foreignKey:UnitID;references:ID" json:"-"`
}

func (Booking) TableName() string { return "bookings" }

// BookingDetail is a booking row joined with its unit and tower for
// display. The embedded Booking keeps the API shape stable.
type BookingDetail struct {
	Booking `gorm:"embedded"`

	UnitNumber *string `gorm:"column:unit_number" json:"unit_number"`
	UnitType   *string `gorm:"column:unit_type" json:"unit_type"`
	TowerName  *string `gorm:"column:tower_name" json:"tower_name"`
}
