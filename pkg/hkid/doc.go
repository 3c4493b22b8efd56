// Package hkid implements the Hong Kong Identity Card number engine.
//
// An HKID is one or two letters, six digits and a trailing check character
// (a digit or 'A'), conventionally written as K123456(8). The package provides
// the four operations form layers need:
//
//   - Normalize turns free-form user text into a Candidate (body plus an
//     optional check character).
//   - ComputeCheckDigit derives the check character for a Body.
//   - Validate and ValidateParts verify single-field and two-field input and
//     return an Outcome describing why input was rejected.
//   - Format renders partial or complete input as the user types.
//
// Every function is pure and safe for concurrent use. Invalid input is an
// expected outcome, never a panic: callers inspect Outcome.Kind (or the
// *Error returned by Normalize) and build their own localized message.
//
// Widget shapes (a single string, a {hkidPrefix, checkDigit} pair or a
// {hkid_main, hkid_checkdigit} pair) are converted at the boundary through
// Combined, PrefixPair and MainCheckPair so callers never branch on them.
package hkid
