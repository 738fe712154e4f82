package ai

import (
	"encoding/json"
	"fmt"
)

// Default advisory text returned when the adapter is unreachable or fails.
// Callers surface this instead of an error so the page still renders.
const FallbackMessage = "AI insights are currently unavailable. Please check back later."

// PerformancePrompt frames a student's academic snapshot for the adapter.
func PerformancePrompt(studentName string, facts interface{}) string {
	data, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		data = []byte("[]")
	}
	return fmt.Sprintf(`You are an academic advisor. Analyze this student's performance data and provide:
1. Overall performance assessment
2. Strengths and weaknesses
3. Specific, actionable improvement suggestions
4. Study recommendations

Student: %s
Performance data:
%s

Keep the response concise and encouraging.`, studentName, data)
}

// ResumePrompt frames resume content for an ATS-style review.
func ResumePrompt(resumeText string) string {
	return fmt.Sprintf(`You are a professional resume reviewer. Analyze this resume and provide:
1. Overall impression
2. Strengths
3. Areas for improvement
4. ATS compatibility suggestions
5. Formatting and content recommendations

Resume:
%s

Keep the response structured and actionable.`, resumeText)
}
