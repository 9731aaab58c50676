package validation

import (
	"regexp"
	"strings"

	"github.com/stubuddies/backend/internal/dto"
	"github.com/stubuddies/backend/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]+$`)
)

const (
	MinAge         = 14
	MaxAge         = 120
	MinUsernameLen = 3
	MinPasswordLen = 6
)

// Errors maps field names to human-readable messages so the client can
// attach them inline. A nil/empty map means the input passed.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Signup checks a registration payload against the full rule set. All rules
// run before any hashing or store I/O; each field reports its first failing
// rule. Age zero counts as missing, not out of range.
func Signup(req *dto.SignupRequest) Errors {
	errs := Errors{}

	required := []struct {
		field, value string
	}{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"gender", req.Gender},
		{"username", strings.TrimSpace(req.Username)},
		{"email", req.Email},
		{"phoneNumber", req.PhoneNumber},
		{"password", req.Password},
	}
	for _, r := range required {
		if r.value == "" {
			errs[r.field] = "This field is required."
		}
	}
	if req.Age == 0 {
		errs["age"] = "This field is required."
	}

	if !req.TermsAccepted {
		errs["termsAccepted"] = "Please accept the terms and conditions to sign up."
	}

	if _, missing := errs["age"]; !missing {
		if req.Age < MinAge || req.Age > MaxAge {
			errs["age"] = "Age must be between 14 and 120."
		}
	}
	if _, missing := errs["gender"]; !missing {
		if !models.ValidGender(req.Gender) {
			errs["gender"] = "Gender must be Male, Female or Preferred not to say."
		}
	}
	if _, missing := errs["username"]; !missing {
		if len(strings.TrimSpace(req.Username)) < MinUsernameLen {
			errs["username"] = "Username must be at least 3 characters."
		}
	}
	if _, missing := errs["email"]; !missing {
		if !emailPattern.MatchString(req.Email) {
			errs["email"] = "Please enter a valid email address."
		}
	}
	if _, missing := errs["phoneNumber"]; !missing {
		if !phonePattern.MatchString(req.PhoneNumber) {
			errs["phoneNumber"] = "Please enter a valid phone number."
		}
	}
	if _, missing := errs["password"]; !missing {
		if len(req.Password) < MinPasswordLen {
			errs["password"] = "Password must be at least 6 characters."
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
