package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // Chart scored at or above the threshold
	ExitBelowThreshold = 1 // Chart scored below --min-score
	ExitError          = 2 // Configuration, input or runtime error
)

// ThresholdError indicates that scoring succeeded but the overall compliance
// fell below the requested minimum.
type ThresholdError struct {
	Score    float64
	MinScore float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("compliance %.2f is below the minimum %.2f", e.Score, e.MinScore)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var thresholdErr *ThresholdError
		if errors.As(err, &thresholdErr) {
			os.Exit(ExitBelowThreshold)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
