package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/acadboost/academic-service/internal/models"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// CertificateTypes lists the accepted certificate categories.
var CertificateTypes = []string{"completion", "achievement", "participation", "excellence"}

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates a struct against its validate tags
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := bv.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: bv.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// ValidateProjectCreate validates project creation business rules
func (bv *BusinessValidator) ValidateProjectCreate(req *ProjectCreateRequest) ValidationErrors {
	errors := bv.Validate(req)
	if len(errors) > 0 {
		return errors
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "must not be before start_date",
			Value:   req.EndDate,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateGrade validates a grading request against the item's maximum marks
func (bv *BusinessValidator) ValidateGrade(req *GradeRequest, maxMarks int) ValidationErrors {
	errors := bv.Validate(req)

	if req.Marks < 0 || req.Marks > maxMarks {
		errors = append(errors, ValidationError{
			Field:   "marks",
			Message: fmt.Sprintf("must be between 0 and %d", maxMarks),
			Value:   req.Marks,
			Rule:    "business_logic",
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Role must be one of admin, teacher, student
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})

	// Attendance status must be present, absent or late
	bv.validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})

	// Semester validation (1-8)
	bv.validate.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		semester := fl.Field().Int()
		return semester >= 1 && semester <= 8
	})

	// Credits validation (1-6)
	bv.validate.RegisterValidation("subject_credits", func(fl validator.FieldLevel) bool {
		credits := fl.Field().Int()
		return credits >= 1 && credits <= 6
	})

	// Maximum marks validation (1-1000)
	bv.validate.RegisterValidation("max_marks", func(fl validator.FieldLevel) bool {
		marks := fl.Field().Int()
		return marks >= 1 && marks <= 1000
	})

	// Certificate category validation
	bv.validate.RegisterValidation("certificate_type", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, t := range CertificateTypes {
			if value == t {
				return true
			}
		}
		return false
	})
}

// getErrorMessage returns user-friendly error messages
func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "alphanum":
		return "must contain only letters and digits"
	case "uppercase":
		return "must be uppercase"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "user_role":
		return "must be admin, teacher or student"
	case "attendance_status":
		return "must be present, absent or late"
	case "semester":
		return "must be between 1 and 8"
	case "subject_credits":
		return "must be between 1 and 6"
	case "max_marks":
		return "must be between 1 and 1000"
	case "certificate_type":
		return fmt.Sprintf("must be one of %v", CertificateTypes)
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
