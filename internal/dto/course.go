package dto

import (
	"syllabus-builder/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateCourseRequest is the body of POST /api/courses
// @Description Raw syllabus text and the number of weeks to plan
type GenerateCourseRequest struct {
	Text  string `json:"text" form:"text"`
	Weeks int    `json:"weeks,omitempty" form:"weeks"`
}

// GenerateCourseResponse carries the new course and any advisory consistency warnings
type GenerateCourseResponse struct {
	Course   *domain.Course `json:"course"`
	Warnings []domain.Issue `json:"warnings,omitempty"`
}

// CourseResponse wraps the current course of a session
type CourseResponse struct {
	Course   *domain.Course `json:"course"`
	Warnings []domain.Issue `json:"warnings,omitempty"`
}

// StatusResponse reports the state of the latest generation request
// @Description Generation status of the caller's workspace
type StatusResponse struct {
	Status    domain.GenerationStatus `json:"status"`
	HasCourse bool                    `json:"hasCourse"`
	Error     string                  `json:"error,omitempty"`
}

// SampleResponse holds the built-in sample syllabus
type SampleResponse struct {
	Text  string `json:"text"`
	Weeks int    `json:"weeks"`
}

// HealthResponse is returned by /healthz
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SessionClaims identifies an anonymous browser session.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
