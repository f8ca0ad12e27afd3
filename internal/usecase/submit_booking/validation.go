package submit_booking

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// phoneRegexp matches mainland Chinese mobile numbers.
var phoneRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.MemberName)
	if name == "" {
		return fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: member name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if !phoneRegexp.MatchString(req.MemberPhone) {
		return fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: station id must be positive", ErrInvalidInput)
	}

	return validateDuration(req.DurationHours)
}

// validateDuration enforces the half-hour grid within the allowed range.
func validateDuration(hours float64) error {
	if hours < domain.MinDurationHours || hours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %.1f and %.1f hours",
			ErrInvalidDuration, domain.MinDurationHours, domain.MaxDurationHours)
	}
	steps := hours / 0.5
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("%w: duration must be a multiple of 0.5 hours", ErrInvalidDuration)
	}
	return nil
}
