package services

import (
	"testing"

	"manuscript-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestChapterFraction(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		target   domain.WordTarget
		expected float64
		ok       bool
	}{
		{"half way", 4000, domain.NumericTarget(8000), 0.5, true},
		{"exactly done", 300, domain.NumericTarget(300), 1, true},
		{"over target is capped", 9000, domain.NumericTarget(8000), 1, true},
		{"nothing written", 0, domain.NumericTarget(5000), 0, true},
		{"zero target is complete", 0, domain.NumericTarget(0), 1, true},
		{"variable target has no fraction", 1200, domain.VariableTarget(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fraction, ok := ChapterFraction(tt.count, tt.target)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, fraction, 1e-9)
		})
	}
}

func TestChapterFraction_Monotone(t *testing.T) {
	for _, target := range []int{1, 7, 300, 8000} {
		previous := -1.0
		for count := 0; count <= target*2; count += 1 + target/50 {
			fraction, ok := ChapterFraction(count, domain.NumericTarget(target))
			assert.True(t, ok)
			assert.GreaterOrEqual(t, fraction, previous, "target %d count %d", target, count)
			assert.LessOrEqual(t, fraction, 1.0)
			previous = fraction
		}
	}
}

func TestAggregateProgress(t *testing.T) {
	chapter := func(count int, target domain.WordTarget) domain.Chapter {
		return domain.Chapter{WordCount: count, Target: target}
	}

	tests := []struct {
		name     string
		chapters []domain.Chapter
		expected float64
	}{
		{
			name: "sums counts over sums of targets",
			chapters: []domain.Chapter{
				chapter(300, domain.NumericTarget(300)),
				chapter(4000, domain.NumericTarget(8000)),
			},
			expected: 4300.0 / 8300.0,
		},
		{
			name: "variable targets are excluded",
			chapters: []domain.Chapter{
				chapter(1000, domain.NumericTarget(2000)),
				chapter(50000, domain.VariableTarget()),
			},
			expected: 0.5,
		},
		{
			name:     "no numeric targets is zero",
			chapters: []domain.Chapter{chapter(500, domain.VariableTarget())},
			expected: 0,
		},
		{
			name:     "only zero targets is zero",
			chapters: []domain.Chapter{chapter(500, domain.NumericTarget(0))},
			expected: 0,
		},
		{
			name:     "empty manuscript is zero",
			chapters: nil,
			expected: 0,
		},
		{
			name: "overshoot is clamped",
			chapters: []domain.Chapter{
				chapter(12000, domain.NumericTarget(8000)),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AggregateProgress(tt.chapters), 1e-9)
		})
	}
}
