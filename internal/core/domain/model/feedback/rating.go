package feedback

import (
	"fitcourse/internal/pkg/errs"
)

const (
	MinRating Rating = 1
	MaxRating Rating = 5
	// DefaultRating is used for draft fields the participant never touched.
	DefaultRating Rating = 3
	// TextFeedbackRating is the documented sentinel stored for free-text
	// feedback in both rating columns.
	TextFeedbackRating Rating = 1

	positiveThreshold Rating = 4
	negativeThreshold Rating = 2
)

// Rating is a 1..5 score.
type Rating int

func NewRating(paramName string, value int) (Rating, error) {
	r := Rating(value)
	if r < MinRating || r > MaxRating {
		return 0, errs.NewValueIsOutOfRangeError(paramName, value, int(MinRating), int(MaxRating))
	}
	return r, nil
}

func (r Rating) Int() int {
	return int(r)
}

// Sentiment is the classification that drives automatic progression.
type Sentiment int

const (
	Neutral Sentiment = iota
	Positive
	Negative
)

func (s Sentiment) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Classify is Positive when both ratings are at least 4, Negative when both
// are at most 2 and Neutral otherwise.
func Classify(difficulty, clarity Rating) Sentiment {
	switch {
	case difficulty >= positiveThreshold && clarity >= positiveThreshold:
		return Positive
	case difficulty <= negativeThreshold && clarity <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
