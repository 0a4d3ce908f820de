package service

import "testing"

func TestOutranks(t *testing.T) {
	tests := []struct {
		name   string
		avgA   float64
		countA int64
		avgB   float64
		countB int64
		want   bool
	}{
		{"higher average wins", 4.5, 2, 4.0, 100, true},
		{"lower average loses", 4.0, 100, 4.5, 2, false},
		{"equal average more ratings wins", 4.5, 10, 4.5, 8, true},
		{"equal average fewer ratings loses", 4.5, 8, 4.5, 10, false},
		{"full tie outranks neither", 4.5, 10, 4.5, 10, false},
		{"unrated against unrated", 0, 0, 0, 0, false},
		{"rated beats unrated", 1.0, 1, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outranks(tt.avgA, tt.countA, tt.avgB, tt.countB); got != tt.want {
				t.Errorf("Outranks(%v, %v, %v, %v) = %v, want %v",
					tt.avgA, tt.countA, tt.avgB, tt.countB, got, tt.want)
			}
		})
	}
}

func TestOutranksAsymmetric(t *testing.T) {
	// 两个不同的条目不能互相胜过对方
	pairs := [][4]float64{
		{4.5, 10, 4.5, 8},
		{4.7, 3, 4.2, 50},
		{3.0, 1, 0, 0},
	}
	for _, p := range pairs {
		if Outranks(p[0], int64(p[1]), p[2], int64(p[3])) && Outranks(p[2], int64(p[3]), p[0], int64(p[1])) {
			t.Errorf("Outranks is symmetric for (%v,%v) vs (%v,%v)", p[0], p[1], p[2], p[3])
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.4444, 4.4},
		{4.45, 4.5},
		{4.666666, 4.7},
		{5, 5},
		{3.05, 3.1},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
