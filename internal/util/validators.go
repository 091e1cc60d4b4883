package util

import (
	"fmt"
	"math"

	"github.com/genc-murat/memprobe/internal/core/models"
)

// MaxSizeMb is the largest buffer size whose byte count still fits in an int.
const MaxSizeMb = math.MaxInt >> 20

var ErrSizeTooLarge = fmt.Errorf("size exceeds %d MB", MaxSizeMb)

// CheckSizeMb rejects sizes whose byte count would overflow.
func CheckSizeMb(sizeMb int) error {
	if sizeMb > MaxSizeMb {
		return ErrSizeTooLarge
	}
	return nil
}

func ValidateScenario(s models.Scenario) error {
	if s.ID == "" {
		return fmt.Errorf("scenario has no id")
	}
	if s.SizeMb <= 0 {
		return fmt.Errorf("scenario %s: sizeMb must be positive, got %d", s.ID, s.SizeMb)
	}
	if err := CheckSizeMb(s.SizeMb); err != nil {
		return fmt.Errorf("scenario %s: %w", s.ID, err)
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("scenario %s: iterations must be positive, got %d", s.ID, s.Iterations)
	}
	return nil
}
