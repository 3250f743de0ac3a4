// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalReturned RentalStatus = "returned"
	RentalCanceled RentalStatus = "canceled"
)

// LoanPeriod is the fixed interval between rented_at and due_at.
const LoanPeriod = 14 * 24 * time.Hour

type Rental struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"user_id"`
	BookID     int64        `json:"book_id"`
	Status     RentalStatus `json:"status"`
	RentedAt   time.Time    `json:"rented_at"`
	DueAt      time.Time    `json:"due_at"`
	ReturnedAt *time.Time   `json:"returned_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Terminal reports whether no further status transition is possible.
func (s RentalStatus) Terminal() bool {
	return s == RentalReturned || s == RentalCanceled
}

// CreateRentalReq represents the rent-a-book payload
// swagger:model CreateRentalReq
type CreateRentalReq struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}
