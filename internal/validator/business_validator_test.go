package validator

import (
	"testing"

	"github.com/acadboost/academic-service/internal/models"
)

func TestValidateLoginRequest(t *testing.T) {
	v := NewBusinessValidator()

	t.Run("valid request", func(t *testing.T) {
		errs := v.Validate(&LoginRequest{Username: "alice", Password: "secret", Role: models.RoleStudent})
		if len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		errs := v.Validate(&LoginRequest{Username: "alice", Password: "secret", Role: "superuser"})
		if len(errs) == 0 {
			t.Error("expected a role validation error")
		}
	})

	t.Run("missing password", func(t *testing.T) {
		errs := v.Validate(&LoginRequest{Username: "alice", Role: models.RoleStudent})
		if len(errs) == 0 {
			t.Error("expected a password validation error")
		}
	})
}

func TestValidateGrade(t *testing.T) {
	v := NewBusinessValidator()

	tests := []struct {
		name     string
		marks    int
		maxMarks int
		wantErr  bool
	}{
		{"zero marks", 0, 100, false},
		{"full marks", 100, 100, false},
		{"above maximum", 101, 100, true},
		{"negative", -1, 100, true},
		{"custom maximum honored", 45, 50, false},
		{"custom maximum exceeded", 51, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGrade(&GradeRequest{Marks: tt.marks}, tt.maxMarks)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidateGrade(%d, max %d) errors = %v, wantErr %v", tt.marks, tt.maxMarks, errs, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectCreate(t *testing.T) {
	v := NewBusinessValidator()

	base := ProjectCreateRequest{
		SubjectID: 1,
		Title:     "Compilers project",
		StartDate: "2024-09-01",
		EndDate:   "2024-10-01",
	}

	t.Run("valid range", func(t *testing.T) {
		req := base
		if errs := v.ValidateProjectCreate(&req); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		req := base
		req.EndDate = "2024-08-01"
		if errs := v.ValidateProjectCreate(&req); len(errs) == 0 {
			t.Error("expected an error for end date before start date")
		}
	})
}

func TestDomainRules(t *testing.T) {
	v := NewBusinessValidator()

	t.Run("semester bounds", func(t *testing.T) {
		valid := SubjectCreateRequest{Name: "Algebra", Code: "MATH1", DepartmentID: 1, Semester: 8}
		if errs := v.Validate(&valid); len(errs) != 0 {
			t.Errorf("semester 8 should be valid: %v", errs)
		}

		invalid := valid
		invalid.Semester = 9
		if errs := v.Validate(&invalid); len(errs) == 0 {
			t.Error("semester 9 should fail validation")
		}
	})

	t.Run("certificate types", func(t *testing.T) {
		valid := CertificateIssueRequest{StudentID: 1, Type: "excellence", Title: "Dean's list"}
		if errs := v.Validate(&valid); len(errs) != 0 {
			t.Errorf("excellence should be a valid type: %v", errs)
		}

		invalid := valid
		invalid.Type = "legendary"
		if errs := v.Validate(&invalid); len(errs) == 0 {
			t.Error("unknown certificate type should fail validation")
		}
	})

	t.Run("attendance status", func(t *testing.T) {
		req := AttendanceMarkRequest{
			SubjectID: 1,
			Date:      "2024-07-15",
			Entries: []AttendanceEntry{
				{StudentID: 1, Status: models.AttendancePresent},
				{StudentID: 2, Status: "vacationing"},
			},
		}
		if errs := v.Validate(&req); len(errs) == 0 {
			t.Error("unknown attendance status should fail validation")
		}
	})
}
