package services

import "time"

// Letter grade thresholds over a 0-100 marks scale. Boundaries are inclusive
// at the lower edge: 90 is A+, 89.99 is A.
func GradeForMarks(marks float64) string {
	switch {
	case marks >= 90:
		return "A+"
	case marks >= 80:
		return "A"
	case marks >= 70:
		return "B+"
	case marks >= 60:
		return "B"
	case marks >= 50:
		return "C"
	case marks >= 40:
		return "D"
	default:
		return "F"
	}
}

// GradePointForMarks maps marks to a 4.0-scale grade point.
func GradePointForMarks(marks float64) float64 {
	switch {
	case marks >= 90:
		return 4.0
	case marks >= 80:
		return 3.5
	case marks >= 70:
		return 3.0
	case marks >= 60:
		return 2.5
	case marks >= 50:
		return 2.0
	case marks >= 40:
		return 1.5
	default:
		return 0.0
	}
}

// GPAForMarks averages grade points over all recorded marks. No marks means
// a GPA of 0.0, not an error.
func GPAForMarks(marks []float64) float64 {
	if len(marks) == 0 {
		return 0.0
	}
	var sum float64
	for _, m := range marks {
		sum += GradePointForMarks(m)
	}
	return sum / float64(len(marks))
}

// DeadlineState classifies an unsubmitted item relative to today.
type DeadlineState string

const (
	DeadlineOverdue  DeadlineState = "overdue"
	DeadlineDueSoon  DeadlineState = "due_soon"
	DeadlineUpcoming DeadlineState = "upcoming"
)

// Warning windows: assignments are flagged three days out, projects seven.
const (
	AssignmentDueSoonDays = 3
	ProjectDueSoonDays    = 7
)

// ClassifyDeadline compares a due date against today at date granularity.
// An item due today is due-soon, not overdue; overdue starts the day after.
func ClassifyDeadline(dueDate, today time.Time, dueSoonDays int) DeadlineState {
	due := truncateToDate(dueDate)
	now := truncateToDate(today)

	if due.Before(now) {
		return DeadlineOverdue
	}
	daysLeft := int(due.Sub(now).Hours() / 24)
	if daysLeft <= dueSoonDays {
		return DeadlineDueSoon
	}
	return DeadlineUpcoming
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate converts a request date that the datetime DTO tag has already
// validated. Input that slipped past validation parses to the zero time,
// which the not-null date columns reject at insert.
func parseDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}
