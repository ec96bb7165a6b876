// Package notify writes styled, single-purpose messages for CLI users.
//
// Message types are success (✔), error (✗), warning (⚠), info (ℹ), activity (►) and
// title messages with an emoji. Colors come from fatih/color and are disabled automatically
// when the output is not a terminal or NO_COLOR is set.
package notify
