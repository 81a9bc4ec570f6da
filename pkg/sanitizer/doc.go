// Package sanitizer normalizes guest-supplied text before validation and
// storage.
//
// All functions are idempotent and never fail: input that cannot be normalized
// yields an empty string.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Phone numbers: convert to E.164 (+[country][number]) when parseable
package sanitizer
