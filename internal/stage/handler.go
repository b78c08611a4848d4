package stage

import (
	"context"
	"regexp"
	"time"

	"draftline/internal/services"
)

// Handler describes the contract the workflow runner needs from each stage.
type Handler interface {
	Name() string
	Run(ctx context.Context, day string) (Summary, error)
	HealthCheck(context.Context) Health
}

// Summary counts what a stage did with its input.
type Summary struct {
	Processed int `json:"processed"`
	Produced  int `json:"produced"`
	Skipped   int `json:"skipped"`
	Rejected  int `json:"rejected"`
}

// Add accumulates another summary into s.
func (s *Summary) Add(other Summary) {
	s.Processed += other.Processed
	s.Produced += other.Produced
	s.Skipped += other.Skipped
	s.Rejected += other.Rejected
}

const DayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Today formats the calendar day of now, in now's location.
func Today(now time.Time) string {
	return now.Format(DayLayout)
}

// ParseDay validates a YYYY-MM-DD day string. An empty value resolves to today.
func ParseDay(value string, now time.Time) (string, error) {
	if value == "" {
		return Today(now), nil
	}
	if !dayPattern.MatchString(value) {
		return "", services.Wrap(services.ErrValidation, "stage", "parse day",
			"Day must use YYYY-MM-DD", nil)
	}
	if _, err := time.Parse(DayLayout, value); err != nil {
		return "", services.Wrap(services.ErrValidation, "stage", "parse day",
			"Day is not a valid calendar date", err)
	}
	return value, nil
}
