package services

import "manuscript-tracker/internal/domain"

// ChapterFraction returns min(count/target, 1) for a numeric target. A zero
// target counts as complete. ok is false for variable targets, which have
// no fraction. The result is non-decreasing in count.
func ChapterFraction(count int, target domain.WordTarget) (fraction float64, ok bool) {
	if !target.IsNumeric() {
		return 0, false
	}
	if target.Words <= 0 {
		return 1, true
	}
	return clamp(float64(count) / float64(target.Words)), true
}

// AggregateProgress returns sum(count)/sum(target) over chapters with a
// numeric target, clamped to [0, 1]. It is 0 when no target words exist.
func AggregateProgress(chapters []domain.Chapter) float64 {
	var written, targeted int
	for _, chapter := range chapters {
		if !chapter.Target.IsNumeric() {
			continue
		}
		written += chapter.WordCount
		targeted += chapter.Target.Words
	}
	if targeted <= 0 {
		return 0
	}
	return clamp(float64(written) / float64(targeted))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
