package progress

import "errors"

// Hard failures. These indicate a broken flow (stale UI, bad ids) and map to
// error responses, unlike the denial codes below which are normal game states.
var (
	ErrProgressNotFound  = errors.New("user progress not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrCourseNotFound    = errors.New("course not found")
)

// Denial is a soft, expected outcome of a mutation. The UI branches on these
// (open the hearts modal, show the practice banner) instead of treating them
// as errors.
type Denial string

const (
	DenialHearts     Denial = "hearts"      // out of hearts, attempt blocked
	DenialPractice   Denial = "practice"    // practice retries never cost hearts
	DenialHeartsFull Denial = "hearts_full" // refill requested at full hearts
	DenialPoints     Denial = "points"      // not enough points for a refill
)

// AttemptResult is the outcome of recording an answer.
type AttemptResult struct {
	Denial   Denial `json:"error,omitempty"`
	LessonID uint   `json:"lesson_id"`
	Practice bool   `json:"practice"`
}

// Denied reports whether the attempt was blocked by a game-economy rule.
func (r *AttemptResult) Denied() bool {
	return r.Denial != ""
}

// RefillResult is the outcome of a shop heart refill.
type RefillResult struct {
	Denial Denial `json:"error,omitempty"`
}

// Denied reports whether the refill was blocked.
func (r *RefillResult) Denied() bool {
	return r.Denial != ""
}
