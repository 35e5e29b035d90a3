package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("20.00")

	paidFor := &Transaction{Amount: amount, Direction: PaidForFriend}
	if want := decimal.RequireFromString("-20.00"); !paidFor.SignedAmount().Equal(want) {
		t.Errorf("paid_for_friend: got %s, want %s", paidFor.SignedAmount(), want)
	}

	paidBy := &Transaction{Amount: amount, Direction: PaidByFriend}
	if want := decimal.RequireFromString("20.00"); !paidBy.SignedAmount().Equal(want) {
		t.Errorf("paid_by_friend: got %s, want %s", paidBy.SignedAmount(), want)
	}
}

func TestParseDirection(t *testing.T) {
	for _, valid := range []string{"paid_for_friend", "paid_by_friend"} {
		if _, err := ParseDirection(valid); err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseDirection("paid_by_stranger"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestDisplayBalance(t *testing.T) {
	cases := []struct {
		balance string
		want    string
	}{
		{"-20", "-$20.00"},
		{"-15.5", "-$15.50"},
		{"0", "+$0.00"},
		{"12.345", "+$12.35"},
	}
	for _, tc := range cases {
		f := &Friend{Balance: decimal.RequireFromString(tc.balance)}
		if got := f.DisplayBalance(); got != tc.want {
			t.Errorf("DisplayBalance(%s): got %s, want %s", tc.balance, got, tc.want)
		}
	}
}
