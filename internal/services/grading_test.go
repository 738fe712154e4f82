package services

import (
	"math"
	"testing"
	"time"
)

func TestGradeForMarks(t *testing.T) {
	tests := []struct {
		marks float64
		want  string
	}{
		{100, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B+"},
		{70, "B+"},
		{69, "B"},
		{60, "B"},
		{59, "C"},
		{50, "C"},
		{49, "D"},
		{40, "D"},
		{39, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := GradeForMarks(tt.marks); got != tt.want {
			t.Errorf("GradeForMarks(%.0f) = %q, want %q", tt.marks, got, tt.want)
		}
	}
}

func TestGradePointForMarks(t *testing.T) {
	tests := []struct {
		marks float64
		want  float64
	}{
		{95, 4.0},
		{85, 3.5},
		{75, 3.0},
		{65, 2.5},
		{55, 2.0},
		{45, 1.5},
		{20, 0.0},
	}

	for _, tt := range tests {
		if got := GradePointForMarks(tt.marks); got != tt.want {
			t.Errorf("GradePointForMarks(%.0f) = %.1f, want %.1f", tt.marks, got, tt.want)
		}
	}
}

func TestGPAForMarks(t *testing.T) {
	t.Run("empty input yields zero", func(t *testing.T) {
		if got := GPAForMarks(nil); got != 0.0 {
			t.Errorf("GPAForMarks(nil) = %.2f, want 0.00", got)
		}
	})

	t.Run("mean of grade points", func(t *testing.T) {
		// 95 -> 4.0, 85 -> 3.5, 75 -> 3.0
		got := GPAForMarks([]float64{95, 85, 75})
		if math.Abs(got-3.5) > 1e-9 {
			t.Errorf("GPAForMarks = %.2f, want 3.50", got)
		}
	})
}

func TestClassifyDeadline(t *testing.T) {
	today := time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate time.Time
		days    int
		want    DeadlineState
	}{
		{"due today is due soon", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), AssignmentDueSoonDays, DeadlineDueSoon},
		{"due at window edge is due soon", time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC), AssignmentDueSoonDays, DeadlineDueSoon},
		{"due past window is upcoming", time.Date(2024, 7, 19, 0, 0, 0, 0, time.UTC), AssignmentDueSoonDays, DeadlineUpcoming},
		{"due yesterday is overdue", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), AssignmentDueSoonDays, DeadlineOverdue},
		{"time of day on the due date does not matter", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), ProjectDueSoonDays, DeadlineDueSoon},
		{"project window spans a week", time.Date(2024, 7, 22, 0, 0, 0, 0, time.UTC), ProjectDueSoonDays, DeadlineDueSoon},
		{"beyond project window is upcoming", time.Date(2024, 7, 23, 0, 0, 0, 0, time.UTC), ProjectDueSoonDays, DeadlineUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDeadline(tt.dueDate, today, tt.days); got != tt.want {
				t.Errorf("ClassifyDeadline(%v) = %q, want %q", tt.dueDate, got, tt.want)
			}
		})
	}
}

func TestCertificateCode(t *testing.T) {
	issueDate := time.Date(2024, 7, 30, 14, 0, 0, 0, time.UTC)
	if got := CertificateCode(issueDate, 7); got != "ACAD-20240730-0007" {
		t.Errorf("CertificateCode = %q, want %q", got, "ACAD-20240730-0007")
	}

	// IDs wider than the pad keep all their digits.
	if got := CertificateCode(issueDate, 123456); got != "ACAD-20240730-123456" {
		t.Errorf("CertificateCode = %q, want %q", got, "ACAD-20240730-123456")
	}
}
