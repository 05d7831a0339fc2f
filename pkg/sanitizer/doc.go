// Package sanitizer normalizes user input before validation.
//
// All functions are idempotent. Input that cannot be normalized is returned
// trimmed but otherwise untouched, so the validator still gets to reject it
// with a proper message.
//
// Normalization includes:
//   - Emails: trimmed and lowercased
//   - Clock times: "9:00" and "9.00" become "09:00"
//   - Dates: "2024-3-5" becomes "2024-03-05"
//   - Free text: whitespace runs collapse to a single space
package sanitizer
