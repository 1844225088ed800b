package feedback

import (
	"fitcourse/internal/core/domain/model/kernel"
)

// Draft is the in-flight rating a participant is composing for one day.
// Drafts live in the session store and are overwritten, never appended.
type Draft struct {
	UserID     kernel.UserID
	Day        kernel.CourseDay
	Difficulty Rating
	Clarity    Rating
}

// NewDraft starts a draft with both ratings at DefaultRating.
func NewDraft(userID kernel.UserID, day kernel.CourseDay) Draft {
	return Draft{UserID: userID, Day: day, Difficulty: DefaultRating, Clarity: DefaultRating}
}

// Apply overwrites the fields that were provided.
func (d Draft) Apply(difficulty, clarity *int) (Draft, error) {
	if difficulty != nil {
		r, err := NewRating("difficulty", *difficulty)
		if err != nil {
			return d, err
		}
		d.Difficulty = r
	}
	if clarity != nil {
		r, err := NewRating("clarity", *clarity)
		if err != nil {
			return d, err
		}
		d.Clarity = r
	}
	return d, nil
}
