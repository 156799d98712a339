// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package validation

import (
	"strings"
	"testing"
)

type actionRequest struct {
	UserID    int64  `validate:"required,gt=0"`
	ProductID int64  `validate:"required,gt=0"`
	EventType string `validate:"required,oneof=view cart purchase"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		req       actionRequest
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid purchase",
			req:     actionRequest{UserID: 1, ProductID: 100, EventType: "purchase"},
			wantErr: false,
		},
		{
			name:      "missing user id",
			req:       actionRequest{ProductID: 100, EventType: "view"},
			wantErr:   true,
			wantField: "UserID",
		},
		{
			name:      "unknown event type",
			req:       actionRequest{UserID: 1, ProductID: 100, EventType: "refund"},
			wantErr:   true,
			wantField: "EventType",
		},
		{
			name:      "negative product id",
			req:       actionRequest{UserID: 1, ProductID: -5, EventType: "cart"},
			wantErr:   true,
			wantField: "ProductID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
			if verr == nil {
				return
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("failed field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestOneofMessageListsChoices(t *testing.T) {
	verr := ValidateStruct(&actionRequest{UserID: 1, ProductID: 1, EventType: "refund"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if msg := verr.Error(); !strings.Contains(msg, "view cart purchase") {
		t.Errorf("message %q should list the allowed event types", msg)
	}
}
