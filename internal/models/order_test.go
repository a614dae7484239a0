package models

import "testing"

func TestNextStatus(t *testing.T) {
	cases := []struct {
		in, want OrderStatus
	}{
		{StatusNew, StatusPreparing},
		{StatusPreparing, StatusReady},
		{StatusReady, StatusDone},
		{StatusDone, StatusDone},
		{OrderStatus("garbage"), OrderStatus("garbage")},
	}
	for _, tc := range cases {
		if got := NextStatus(tc.in); got != tc.want {
			t.Errorf("NextStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
