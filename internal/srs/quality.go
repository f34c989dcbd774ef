package srs

import "fmt"

// Quality is the learner's 0-5 self-assessment for one presentation
// of one item. Anything at PassThreshold or above counts as a
// successful recall.
type Quality int

const (
	// QualityBlackout means no recall at all.
	QualityBlackout Quality = 0
	// QualityWrong means the answer was wrong but felt familiar once seen.
	QualityWrong Quality = 1
	// QualityAlmost means the answer was wrong but close.
	QualityAlmost Quality = 2
	// QualityHard means correct recall with serious difficulty.
	QualityHard Quality = 3
	// QualityGood means correct recall after some hesitation.
	QualityGood Quality = 4
	// QualityPerfect means instant, effortless recall.
	QualityPerfect Quality = 5
)

// PassThreshold is the lowest quality counting as a success.
const PassThreshold Quality = QualityHard

// IsValid reports whether q is on the 0-5 grading scale.
func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passing reports whether q counts as a successful recall.
func (q Quality) Passing() bool {
	return q >= PassThreshold
}

// String returns a short label for display.
func (q Quality) String() string {
	switch q {
	case QualityBlackout:
		return "blackout"
	case QualityWrong:
		return "wrong"
	case QualityAlmost:
		return "almost"
	case QualityHard:
		return "hard"
	case QualityGood:
		return "good"
	case QualityPerfect:
		return "perfect"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}
