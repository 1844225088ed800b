// Package kernel provides the primitives shared by the course domain model.
//
// The package includes:
//   - UUID: identity of scheduled job instances and feedback records
//   - UserID: the participant identity assigned by the chat platform
//   - CourseDay: a day number bounded by MaxCourseDay
//   - Zone and Clock: timezone resolution and wall-clock scheduling helpers
//
// ResolveZone never fails: unknown identifiers fall back to DefaultZoneID and
// the returned error only reports that a fallback happened.
package kernel
