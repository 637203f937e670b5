// Package validation provides declarative per-endpoint input checks. Each
// endpoint has a rule set executed before any persistence access; failures
// accumulate into a uniform error list.
package validation

import (
	"regexp"
	"strings"
	"time"

	"devconnect/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 6

// rule checks one field and reports a message on failure.
type rule func() (string, bool)

func required(value, msg string) rule {
	return func() (string, bool) {
		return msg, strings.TrimSpace(value) != ""
	}
}

func validEmail(value, msg string) rule {
	return func() (string, bool) {
		return msg, emailRegex.MatchString(value) && len(value) <= 254
	}
}

func minLen(value string, n int, msg string) rule {
	return func() (string, bool) {
		return msg, len(value) >= n
	}
}

func notZeroTime(value time.Time, msg string) rule {
	return func() (string, bool) {
		return msg, !value.IsZero()
	}
}

func run(rules ...rule) []models.FieldError {
	var errs []models.FieldError
	for _, r := range rules {
		if msg, ok := r(); !ok {
			errs = append(errs, models.FieldError{Msg: msg})
		}
	}
	return errs
}

// Registration validates the account-creation payload.
func Registration(name, email, password string) []models.FieldError {
	return run(
		required(name, "Name is required"),
		validEmail(email, "Please include a valid email"),
		minLen(password, minPasswordLen, "Please enter a password with 6 or more characters"),
	)
}

// Login validates the session-creation payload.
func Login(email, password string) []models.FieldError {
	return run(
		validEmail(email, "Please include a valid email"),
		required(password, "Password is required"),
	)
}

// ProfileUpsert validates the profile create/update payload.
func ProfileUpsert(status string, skills []string) []models.FieldError {
	errs := run(required(status, "Status is required"))
	if len(skills) == 0 {
		errs = append(errs, models.FieldError{Msg: "Skills is required"})
	}
	return errs
}

// Experience validates a new experience entry.
func Experience(title, company string, from time.Time) []models.FieldError {
	return run(
		required(title, "Title is required"),
		required(company, "Company is required"),
		notZeroTime(from, "From date is required"),
	)
}

// Education validates a new education entry.
func Education(school, degree, fieldOfStudy string, from time.Time) []models.FieldError {
	return run(
		required(school, "School is required"),
		required(degree, "Degree is required"),
		required(fieldOfStudy, "Field of study is required"),
		notZeroTime(from, "From date is required"),
	)
}

// PostText validates post and comment bodies.
func PostText(text string) []models.FieldError {
	return run(required(text, "Text is required"))
}
