package feedback

import (
	"errors"
	"strings"
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"
)

const maxCommentLength = 2000

var (
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewStructuredRecord or NewTextRecord")
	ErrCommentIsRequired      = errs.NewValueIsRequiredError("comment")
)

// Kind distinguishes button ratings from free-text submissions.
type Kind string

const (
	Structured Kind = "structured"
	FreeText   Kind = "free_text"
)

// Record is one persisted feedback submission. Records are append-only.
type Record struct {
	id         kernel.UUID
	userID     kernel.UserID
	day        kernel.CourseDay
	difficulty Rating
	clarity    Rating
	comments   string
	kind       Kind
	createdAt  time.Time

	isConstructed bool
}

// NewStructuredRecord validates both ratings; comments are optional.
func NewStructuredRecord(
	userID kernel.UserID,
	day kernel.CourseDay,
	difficulty, clarity int,
	comments string,
	now time.Time,
) (*Record, error) {
	d, dErr := NewRating("difficulty", difficulty)
	c, cErr := NewRating("clarity", clarity)
	r := &Record{
		id:            kernel.NewUUID(),
		difficulty:    d,
		clarity:       c,
		kind:          Structured,
		createdAt:     now,
		isConstructed: true,
	}
	if err := errors.Join(
		dErr,
		cErr,
		r.setOwner(userID, day),
		r.setComments(comments, false),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// NewTextRecord stores free text with the sentinel ratings.
func NewTextRecord(userID kernel.UserID, day kernel.CourseDay, text string, now time.Time) (*Record, error) {
	r := &Record{
		id:            kernel.NewUUID(),
		difficulty:    TextFeedbackRating,
		clarity:       TextFeedbackRating,
		kind:          FreeText,
		createdAt:     now,
		isConstructed: true,
	}
	if err := errors.Join(
		r.setOwner(userID, day),
		r.setComments(text, true),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRecord rebuilds a persisted submission.
func RestoreRecord(
	id kernel.UUID,
	userID kernel.UserID,
	day kernel.CourseDay,
	difficulty, clarity int,
	comments string,
	kind Kind,
	createdAt time.Time,
) (*Record, error) {
	r := &Record{
		id:            id,
		difficulty:    Rating(difficulty),
		clarity:       Rating(clarity),
		comments:      comments,
		kind:          kind,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if err := errors.Join(id.Validate(), r.setOwner(userID, day)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID {
	return r.id
}

func (r *Record) UserID() kernel.UserID {
	return r.userID
}

func (r *Record) Day() kernel.CourseDay {
	return r.day
}

func (r *Record) Difficulty() Rating {
	return r.difficulty
}

func (r *Record) Clarity() Rating {
	return r.clarity
}

func (r *Record) Comments() string {
	return r.comments
}

func (r *Record) Kind() Kind {
	return r.kind
}

func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Record) Sentiment() Sentiment {
	return r.classify()
}

// classify treats every free-text submission as negative: the text path is
// only offered after the participant disliked the training.
func (r *Record) classify() Sentiment {
	if r.kind == FreeText {
		return Negative
	}
	return Classify(r.difficulty, r.clarity)
}

func (r *Record) setOwner(userID kernel.UserID, day kernel.CourseDay) error {
	if err := errors.Join(userID.Validate(), day.Validate()); err != nil {
		return err
	}
	r.userID = userID
	r.day = day
	return nil
}

func (r *Record) setComments(comments string, required bool) error {
	trimmed := strings.TrimSpace(comments)
	if required && trimmed == "" {
		return ErrCommentIsRequired
	}
	if len([]rune(trimmed)) > maxCommentLength {
		trimmed = string([]rune(trimmed)[:maxCommentLength])
	}
	r.comments = trimmed
	return nil
}
