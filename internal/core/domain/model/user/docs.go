// Package user contains the participant aggregate: course position, the
// completion flag of the current day and the activity timestamp the
// progression sweep relies on.
package user
