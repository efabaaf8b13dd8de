// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package booking is fixture source for the symbol front-end tests.
package booking

import "time"

// Status tracks the lifecycle of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Payment is settled by exactly one of the declared methods.
type Payment interface {
	pay()
}

// Card pays with a stored card.
type Card struct {
	// Number is the masked card number.
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry"`
}

func (Card) pay() {}

// Cash pays on arrival.
type Cash struct {
	Currency string `json:"currency" default:"EUR"`
}

func (Cash) pay() {}

type audited struct {
	CreatedAt time.Time `json:"createdAt"`
}

// Booking is one hotel reservation.
type Booking struct {
	audited

	ID     int64   `json:"id" validate:"required"`
	Hotel  string  `json:"hotel" doc:"Hotel display name" validate:"minlen=1"`
	Guests int     `json:"guests" example:"2" validate:"gte=1,lte=8"`
	Notes  *string `json:"notes"`
	Status Status  `json:"status"`
	Paid   Payment `json:"paid"`

	internal string `json:"internal"`
}

// Filters narrows a hotel search.
type Filters struct {
	City string `json:"city"`
	// Stars is the minimum star rating.
	Stars int `json:"stars"`
}

// SearchHotels returns the hotels matching query, at most limit results.
func SearchHotels(query string, limit int, filters *Filters, extra ...string) []string {
	_ = query
	_ = limit
	_ = filters
	_ = extra

	return nil
}

// Cancel is a method and therefore not a valid tool target.
func (b *Booking) Cancel() {}
