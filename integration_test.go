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

//go:build integration

package typegraph_test

import (
	"context"
	"fmt"
	"path"
	"reflect"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/typegraph"
	"rivaas.dev/typegraph/validate"
)

func TestTypegraph(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Typegraph Suite")
}

type PaymentMethod interface{ Pay() }

type CardPayment struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry"`
}

func (CardPayment) Pay() {}

type CashPayment struct {
	Currency string `json:"currency" default:"EUR"`
}

func (CashPayment) Pay() {}

type Reservation struct {
	ID     int64         `json:"id" validate:"required"`
	Hotel  string        `json:"hotel" doc:"Hotel display name" validate:"minlen=1"`
	Guests int           `json:"guests" validate:"gte=1,lte=8"`
	Notes  *string       `json:"notes"`
	Paid   PaymentMethod `json:"paid"`
}

var _ = Describe("Schema generation", func() {
	var (
		ctx context.Context
		api *typegraph.API
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = typegraph.MustNew(
			typegraph.WithUnion((*PaymentMethod)(nil), CardPayment{}, CashPayment{}),
			typegraph.WithValidation(true),
		)
	})

	Describe("object schemas", func() {
		It("produces a valid self-contained document", func() {
			result, err := api.GenerateSchema(ctx, Reservation{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.JSON).NotTo(BeEmpty())
			Expect(result.YAML).NotTo(BeEmpty())

			engine := validate.New()
			Expect(engine.ValidateSchema(ctx, result.JSON)).To(Succeed())
		})

		It("accepts conforming instances and rejects violations", func() {
			result, err := api.GenerateSchema(ctx, Reservation{})
			Expect(err).NotTo(HaveOccurred())

			engine := validate.New()

			// Discriminator values carry the package-qualified subtype ID.
			pkg := path.Base(reflect.TypeFor[CashPayment]().PkgPath())
			cashID := fmt.Sprintf("%s.PaymentMethod.CashPayment", pkg)

			ok := []byte(fmt.Sprintf(`{
				"id": 7,
				"hotel": "Grand Budapest",
				"guests": 2,
				"notes": "late arrival",
				"paid": {"type": %q, "currency": "EUR"}
			}`, cashID))
			Expect(engine.ValidateInstance(ctx, result.JSON, ok)).To(Succeed())

			tooMany := []byte(fmt.Sprintf(`{
				"id": 7,
				"hotel": "Grand Budapest",
				"guests": 99,
				"notes": "late arrival",
				"paid": {"type": %q}
			}`, cashID))
			Expect(engine.ValidateInstance(ctx, result.JSON, tooMany)).NotTo(Succeed())
		})

		It("is deterministic across repeated generation", func() {
			first, err := api.GenerateSchema(ctx, Reservation{})
			Expect(err).NotTo(HaveOccurred())
			second, err := api.GenerateSchema(ctx, Reservation{})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.JSON).To(Equal(first.JSON))
			Expect(second.YAML).To(Equal(first.YAML))
		})
	})

	Describe("tool schemas", func() {
		It("wraps flattened parameters in a function envelope", func() {
			result, err := api.GenerateToolSchema(ctx, typegraph.ToolDef{
				Name:        "create_reservation",
				Description: "Create a hotel reservation.",
				Target:      Reservation{},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(string(result.JSON)).To(ContainSubstring(`"type": "function"`))
			Expect(string(result.JSON)).To(ContainSubstring(`"name": "create_reservation"`))
			Expect(string(result.JSON)).NotTo(ContainSubstring(`$defs`))
		})
	})

	Describe("symbol front-end", func() {
		It("generates from package source without executing it", func() {
			result, err := api.GenerateSchema(ctx, typegraph.Symbol{
				Pattern: "./internal/symbolx/testdata/booking",
				Type:    "Booking",
			})
			Expect(err).NotTo(HaveOccurred())

			engine := validate.New()
			Expect(engine.ValidateSchema(ctx, result.JSON)).To(Succeed())
		})
	})
})
