// Package validate holds the input checks applied to credentials before they
// leave the client and again when they reach the server.
package validate

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordAlphabet = "@$!%*#?&"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Email reports whether s looks like an e-mail address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password accepts at least MinPasswordLength characters drawn from letters,
// digits and @$!%*#?&, with at least one letter and one digit.
func Password(s string) bool {
	if len(s) < MinPasswordLength {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordAlphabet, r):
		default:
			return false
		}
	}
	return letter && digit
}

// Required reports whether s has non-blank content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Errors collects field messages in the order they were added.
type Errors []string

// Check appends msg when ok is false.
func (e *Errors) Check(ok bool, msg string) {
	if !ok {
		*e = append(*e, msg)
	}
}

// Empty reports whether no check failed.
func (e Errors) Empty() bool { return len(e) == 0 }

// Error joins the messages with ", ".
func (e Errors) Error() string {
	return strings.Join(e, ", ")
}

// Login validates login input.
func Login(email, password string) Errors {
	var errs Errors
	if !Required(email) {
		errs.Check(false, "Email is required")
	} else {
		errs.Check(Email(email), "Please enter a valid email")
	}
	errs.Check(Required(password), "Password is required")
	return errs
}

// Registration validates sign-up input.
func Registration(firstName, lastName, email, password string) Errors {
	var errs Errors
	errs.Check(Required(firstName), "First name is required")
	errs.Check(Required(lastName), "Last name is required")
	if !Required(email) {
		errs.Check(false, "Email is required")
	} else {
		errs.Check(Email(email), "Please enter a valid email")
	}
	errs.Check(Password(password), "Password must be at least 8 characters and contain a letter and a number")
	return errs
}
