package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "iso", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long month", format: "MMMM DD, YYYY", want: "January 02, 2006"},
		{name: "short tokens", format: "D/M/YY", want: "2/1/06"},
		{name: "short month", format: "MMM D", want: "Jan 2"},
		{name: "bracket literal", format: "[Day] DD", want: "Day 02"},
		{name: "literals pass through", format: "YYYY.MM", want: "2006.01"},
		{name: "empty", format: "", wantErr: true},
		{name: "unclosed bracket", format: "[oops", wantErr: true},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("ParseDateFormat(%q) error = %v, want ErrInvalidDateFormat", tt.format, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) error = %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"", "March 05, 2025"},
		{"notes", "March 05, 2025"},
		{"ISO", "2025-03-05"},
		{"european", "05/03/2025"},
		{"us", "03/05/2025"},
		{"long", "March 5, 2025"},
		{"[Updated] D MMM", "Updated 5 Mar"},
	}

	for _, tt := range tests {
		got, err := Format(ts, tt.format)
		if err != nil {
			t.Errorf("Format(%q) error = %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}

	if _, err := Format(ts, "[bad"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("Format([bad) error = %v", err)
	}
}
