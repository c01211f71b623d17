package jobs

import (
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "03:30", want: "30 3 * * *"},
		{in: "00:00", want: "0 0 * * *"},
		{in: "23:59", want: "59 23 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
	}

	for _, tc := range cases {
		got, err := buildDailySpec(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("buildDailySpec(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScheduleDailyRejectsBadTime(t *testing.T) {
	s := NewScheduler(time.UTC)
	if _, err := s.ScheduleDaily("25:00", func() {}); err == nil {
		t.Fatal("expected error for invalid time")
	}
}
