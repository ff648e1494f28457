package split

import (
	"errors"
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func sumShares(shares []Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	return sum
}

func TestNew(t *testing.T) {
	for _, typ := range []Type{TypeEqual, TypeExact, TypePercentage} {
		strategy, err := New(typ)
		if err != nil {
			t.Fatalf("New(%s) error = %v", typ, err)
		}
		if strategy.Type() != typ {
			t.Errorf("New(%s).Type() = %s", typ, strategy.Type())
		}
	}

	if _, err := New("weighted"); err == nil {
		t.Error("New() expected error for unknown split type")
	}
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []Input
		wantErr      error
		wantShares   map[string]float64
	}{
		{
			name:         "two way split",
			total:        30,
			participants: []Input{{MemberID: "a"}, {MemberID: "b"}},
			wantShares:   map[string]float64{"a": 15, "b": 15},
		},
		{
			name:         "remainder cent goes to first participant",
			total:        10,
			participants: []Input{{MemberID: "a"}, {MemberID: "b"}, {MemberID: "c"}},
			wantShares:   map[string]float64{"a": 3.34, "b": 3.33, "c": 3.33},
		},
		{
			name:         "single participant owes everything",
			total:        12.5,
			participants: []Input{{MemberID: "a"}},
			wantShares:   map[string]float64{"a": 12.5},
		},
		{
			name:         "no participants",
			total:        10,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative amount",
			total:        -5,
			participants: []Input{{MemberID: "a"}},
			wantErr:      ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := equalStrategy{}.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			checkShares(t, shares, tt.wantShares, tt.total)
		})
	}
}

func TestExactSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []Input
		wantErr      error
		wantShares   map[string]float64
	}{
		{
			name:  "amounts used as given",
			total: 50,
			participants: []Input{
				{MemberID: "a", Amount: f(35.5)},
				{MemberID: "b", Amount: f(14.5)},
			},
			wantShares: map[string]float64{"a": 35.5, "b": 14.5},
		},
		{
			name:  "missing amount",
			total: 50,
			participants: []Input{
				{MemberID: "a", Amount: f(50)},
				{MemberID: "b"},
			},
			wantErr: ErrMissingAmount,
		},
		{
			name:  "amounts must sum to total",
			total: 50,
			participants: []Input{
				{MemberID: "a", Amount: f(20)},
				{MemberID: "b", Amount: f(20)},
			},
			wantErr: ErrExactSum,
		},
		{
			name:  "negative share",
			total: 50,
			participants: []Input{
				{MemberID: "a", Amount: f(60)},
				{MemberID: "b", Amount: f(-10)},
			},
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := exactStrategy{}.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			checkShares(t, shares, tt.wantShares, tt.total)
		})
	}
}

func TestPercentageSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []Input
		wantErr      error
		wantShares   map[string]float64
	}{
		{
			name:  "uneven percentages",
			total: 200,
			participants: []Input{
				{MemberID: "a", Percentage: f(70)},
				{MemberID: "b", Percentage: f(30)},
			},
			wantShares: map[string]float64{"a": 140, "b": 60},
		},
		{
			name:  "remainder cent goes to last participant",
			total: 100,
			participants: []Input{
				{MemberID: "a", Percentage: f(33.33)},
				{MemberID: "b", Percentage: f(33.33)},
				{MemberID: "c", Percentage: f(33.34)},
			},
			wantShares: map[string]float64{"a": 33.33, "b": 33.33, "c": 33.34},
		},
		{
			name:  "percentages must sum to 100",
			total: 100,
			participants: []Input{
				{MemberID: "a", Percentage: f(50)},
				{MemberID: "b", Percentage: f(40)},
			},
			wantErr: ErrPercentageSum,
		},
		{
			name:  "percentage out of range",
			total: 100,
			participants: []Input{
				{MemberID: "a", Percentage: f(150)},
				{MemberID: "b", Percentage: f(-50)},
			},
			wantErr: ErrPercentageOutOfRange,
		},
		{
			name:  "missing percentage",
			total: 100,
			participants: []Input{
				{MemberID: "a", Percentage: f(100)},
				{MemberID: "b"},
			},
			wantErr: ErrMissingPercentage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := percentageStrategy{}.Calculate(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			checkShares(t, shares, tt.wantShares, tt.total)
		})
	}
}

func checkShares(t *testing.T, shares []Share, want map[string]float64, total float64) {
	t.Helper()

	if len(shares) != len(want) {
		t.Fatalf("got %d shares, want %d: %+v", len(shares), len(want), shares)
	}
	for _, s := range shares {
		if math.Abs(s.Amount-want[s.MemberID]) > 1e-9 {
			t.Errorf("share for %s = %v, want %v", s.MemberID, s.Amount, want[s.MemberID])
		}
	}
	if math.Abs(sumShares(shares)-total) > 1e-9 {
		t.Errorf("shares sum to %v, want %v", sumShares(shares), total)
	}
}
