package authValidator

import (
	"regexp"
	"strings"
)

// ValidationError names the first violated rule and its message.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// rule is a predicate + message pair. Rules are evaluated in order and
// the first violation wins.
type rule struct {
	name    string
	check   func(string) bool
	message string
}

var (
	upperRe      = regexp.MustCompile(`[A-Z]`)
	lowerRe      = regexp.MustCompile(`[a-z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
	symbolRe     = regexp.MustCompile(`[!@#$%^&*.()]`)
	whitespaceRe = regexp.MustCompile(`\s`)

	usernameCharsRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	usernameStartRe = regexp.MustCompile(`^[a-zA-Z]`)
	usernameEndRe   = regexp.MustCompile(`[a-zA-Z0-9]$`)
)

var passwordRules = []rule{
	{
		name:    "length",
		check:   func(s string) bool { return len(s) >= 8 && len(s) <= 32 },
		message: "The password must be at least 8 characters long and maximum 32 characters long.",
	},
	{
		name:    "uppercase",
		check:   upperRe.MatchString,
		message: "The password must contain at least one uppercase letter.",
	},
	{
		name:    "lowercase",
		check:   lowerRe.MatchString,
		message: "The password must contain at least one lowercase letter.",
	},
	{
		name:    "number",
		check:   digitRe.MatchString,
		message: "The password must contain at least one number.",
	},
	{
		name:    "special",
		check:   symbolRe.MatchString,
		message: "The password must contain at least one special character.",
	},
	{
		name:    "whitespace",
		check:   func(s string) bool { return !whitespaceRe.MatchString(s) },
		message: "The password must not contain whitespace character.",
	},
}

var usernameRules = []rule{
	{
		name:    "length",
		check:   func(s string) bool { return len(s) >= 5 && len(s) <= 20 },
		message: "The username must be at least 5 characters long and maximum 20 characters long.",
	},
	{
		name:    "whitespace",
		check:   func(s string) bool { return s == strings.TrimSpace(s) },
		message: "The username must not contain leading or trailing whitespace characters.",
	},
	{
		name:    "charset",
		check:   usernameCharsRe.MatchString,
		message: "The username may only contain alphanumeric characters (a-z, A-Z, 0-9), underscores (_), and hyphens (-).",
	},
	{
		name:    "start",
		check:   usernameStartRe.MatchString,
		message: "The username must start with a letter (a-z or A-Z).",
	},
	{
		name:    "end",
		check:   usernameEndRe.MatchString,
		message: "The username must not end with an underscore, hyphen, or special character.",
	},
}

func firstViolation(rules []rule, value string) *ValidationError {
	for _, r := range rules {
		if !r.check(value) {
			return &ValidationError{Rule: r.name, Message: r.message}
		}
	}
	return nil
}

// ValidatePassword checks the password policy and returns the first
// violated rule, or nil when the password is acceptable.
func ValidatePassword(password string) *ValidationError {
	return firstViolation(passwordRules, password)
}

// ValidateUsername checks the username policy and returns the first
// violated rule, or nil when the username is acceptable.
func ValidateUsername(username string) *ValidationError {
	return firstViolation(usernameRules, username)
}
