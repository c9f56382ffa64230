package main

import "testing"

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{" , ", []string{}},
		{"Date,Close", []string{"Date", "Close"}},
		{" Adj Close , Volume", []string{"Adj Close", "Volume"}},
	}
	for _, tt := range tests {
		got := splitColumns(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitColumns(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitColumns(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
