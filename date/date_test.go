package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFields(t *testing.T) {
	tests := []struct {
		y       int
		m       time.Month
		d       int
		weekday time.Weekday
	}{
		{2025, time.July, 31, time.Thursday},
		{1970, time.January, 1, time.Thursday},
		{1969, time.December, 31, time.Wednesday},
		{2024, time.February, 29, time.Thursday},
		{1, time.January, 1, time.Monday},
	}
	for _, tt := range tests {
		d := New(tt.y, tt.m, tt.d)
		if d.Year() != tt.y || d.Month() != tt.m || d.Day() != tt.d || d.Weekday() != tt.weekday {
			t.Errorf("New(%d, %d, %d) = %v (%v)", tt.y, tt.m, tt.d, d, d.Weekday())
		}
		if d.IsZero() {
			t.Errorf("New(%d, %d, %d) must not be zero", tt.y, tt.m, tt.d)
		}
	}
}

func TestToday(t *testing.T) {
	now := time.Now()
	y, m, d := now.Date()
	if got := Today(); got != New(y, m, d) && got != fromTime(time.Now()) {
		t.Errorf("Today() = %v, want %v", got, now.Format(DateFormat))
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, 2, 30), New(2025, 3, 2); got != want {
		t.Errorf("New(2025, 2, 30) = %v, want %v", got, want)
	}
	if got, want := New(2025, 1, 31).Add(1), New(2025, 2, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, 7, 1)},
		{in: "2025-7-1", want: New(2025, 7, 1)},
		{in: "01/07/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustParse(t *testing.T) {
	if got, want := MustParse("2025-07-01"), New(2025, 7, 1); got != want {
		t.Errorf("MustParse() = %v, want %v", got, want)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustParse() of an invalid date did not panic")
		}
	}()
	MustParse("July 1st")
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		d, x Date
		want int
	}{
		{New(2025, 1, 10), New(2025, 1, 1), 9},
		{New(2025, 1, 1), New(2025, 1, 1), 0},
		{New(2025, 1, 1), New(2025, 1, 10), -9},
		{New(2025, 1, 1), New(2024, 1, 1), 366},
		{New(1970, 1, 1), New(1969, 12, 31), 1},
	}
	for _, tt := range tests {
		if got := tt.d.DaysSince(tt.x); got != tt.want {
			t.Errorf("%v.DaysSince(%v) = %d, want %d", tt.d, tt.x, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2025, 1, 1), New(2025, 1, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is not consistent for %v and %v", a, b)
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Errorf("IsZero is wrong")
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, 7, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got, want := string(data), `"2025-07-01"`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
	var back Date
	if err := json.Unmarshal([]byte(`"2025-7-1"`), &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("json.Unmarshal() = %v, want %v", back, d)
	}
}
