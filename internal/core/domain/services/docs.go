// Package services provides domain services that span aggregates or hold
// rules too broad for a single aggregate.
//
// The package includes:
//   - ProgressionPolicy: decides when a participant advances to the next
//     course day, reconciling feedback, elapsed time and time of day
package services
