package booking

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical intervals overlap", Interval{540, 600}, Interval{540, 600}, true},
		{"contained interval overlaps", Interval{540, 600}, Interval{550, 560}, true},
		{"partial overlap", Interval{540, 600}, Interval{570, 660}, true},
		{"touching intervals do not overlap", Interval{0, 60}, Interval{60, 120}, false},
		{"disjoint intervals do not overlap", Interval{0, 60}, Interval{120, 180}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// symmetry must hold for every pair
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v (asymmetric)", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"14:05:59", 845, false}, // seconds truncated
		{" 08:15 ", 495, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) = %d, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestClockToMinutesDegradesToMidnight(t *testing.T) {
	for _, in := range []string{"garbage", "", "25:00"} {
		if got := ClockToMinutes(in); got != 0 {
			t.Errorf("ClockToMinutes(%q) = %d, want 0", in, got)
		}
	}
	if got := ClockToMinutes("10:45"); got != 645 {
		t.Errorf("ClockToMinutes(10:45) = %d, want 645", got)
	}
}

func TestMinutesToClock(t *testing.T) {
	if got := MinutesToClock(645); got != "10:45" {
		t.Errorf("MinutesToClock(645) = %q, want 10:45", got)
	}
	if got := MinutesToClock(0); got != "00:00" {
		t.Errorf("MinutesToClock(0) = %q, want 00:00", got)
	}
}
