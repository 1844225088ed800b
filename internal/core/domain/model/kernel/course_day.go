package kernel

import (
	"errors"

	"fitcourse/internal/pkg/errs"
)

const (
	// FirstCourseDay is the day every participant starts on.
	FirstCourseDay CourseDay = 1
	// MaxCourseDay is the last day of the course.
	MaxCourseDay CourseDay = 3
)

var ErrCourseDayIsLast = errors.New("course day is already the last one")

// CourseDay is a day number in [FirstCourseDay, MaxCourseDay].
type CourseDay int

func NewCourseDay(day int) (CourseDay, error) {
	d := CourseDay(day)
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return d, nil
}

func (d CourseDay) Validate() error {
	if d < FirstCourseDay || d > MaxCourseDay {
		return errs.NewValueIsOutOfRangeError("course day", int(d), int(FirstCourseDay), int(MaxCourseDay))
	}
	return nil
}

func (d CourseDay) IsLast() bool {
	return d >= MaxCourseDay
}

// Next returns the following day or ErrCourseDayIsLast.
func (d CourseDay) Next() (CourseDay, error) {
	if d.IsLast() {
		return d, ErrCourseDayIsLast
	}
	return d + 1, nil
}

func (d CourseDay) Int() int {
	return int(d)
}
