package service

import (
	"fmt"
	"math"
	"strings"
)

// Re-measurement tolerances. A variance at or under the tolerance is
// acceptable; anything over flags a discrepancy.
const (
	ToleranceVoltage     = 5.0
	ToleranceCurrent     = 5.0
	TolerancePowerFactor = 0.05
)

// toleranceLevels is the human-readable summary stored on each
// re-verification record.
const toleranceLevels = "voltage ±5.0V, current ±5.0A, power factor ±0.05"

const withinToleranceMessage = "All readings within acceptable tolerance levels"

// compareReadings diffs a new measurement triple against the original one
// and returns the absolute variances, the discrepancy messages, and whether
// everything stayed within tolerance. A reading missing on either side is
// skipped; its variance stays nil and never counts as a discrepancy.
func compareReadings(origV, origC, origPF, newV, newC, newPF *float64) (varV, varC, varPF *float64, results string, withinTolerance bool) {
	var messages []string

	if origV != nil && newV != nil {
		d := math.Abs(*newV - *origV)
		varV = &d
		if d > ToleranceVoltage {
			messages = append(messages, fmt.Sprintf("Voltage variance %.2fV exceeds tolerance 5V", d))
		}
	}
	if origC != nil && newC != nil {
		d := math.Abs(*newC - *origC)
		varC = &d
		if d > ToleranceCurrent {
			messages = append(messages, fmt.Sprintf("Current variance %.2fA exceeds tolerance 5A", d))
		}
	}
	if origPF != nil && newPF != nil {
		d := math.Abs(*newPF - *origPF)
		varPF = &d
		if d > TolerancePowerFactor {
			messages = append(messages, fmt.Sprintf("Power factor variance %.2f exceeds tolerance 0.05", d))
		}
	}

	if len(messages) == 0 {
		return varV, varC, varPF, withinToleranceMessage, true
	}
	return varV, varC, varPF, strings.Join(messages, "; "), false
}
