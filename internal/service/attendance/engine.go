package attendance

import (
	"time"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/utils"
)

// Engine turns one fully-gathered check-in attempt into a verdict. It is
// pure: no clock access, no I/O, no retained state between calls.
type Engine struct {
	policy  schedule.Policy
	matcher face.Matcher
}

func NewEngine(policy schedule.Policy, matcher face.Matcher) *Engine {
	return &Engine{policy: policy, matcher: matcher}
}

// EvaluationInput carries everything a verdict depends on, already resolved
// by the caller.
type EvaluationInput struct {
	Schedule schedule.Descriptor
	Geofence *class.Geofence
	Position *attendance.Position

	RequireFace bool
	Enrolled    face.Descriptor
	Sample      face.Descriptor

	Now time.Time
}

// EvaluationResult is the verdict plus the window it was judged against.
type EvaluationResult struct {
	Verdict    attendance.Verdict
	Window     schedule.Window
	State      schedule.State
	FiresToday bool
}

// Evaluate runs the three checks in order: window, geofence, face. The
// window classification is authoritative; once the late grace has passed the
// attempt is rejected no matter what state the UI carried over. Malformed
// input surfaces as an error, never as a verdict.
func (e *Engine) Evaluate(in EvaluationInput) (EvaluationResult, error) {
	if err := in.Schedule.Validate(); err != nil {
		return EvaluationResult{}, err
	}

	window, state, firesToday := in.Schedule.EvaluateAt(in.Now, e.policy)
	result := EvaluationResult{Window: window, State: state, FiresToday: firesToday}

	if !firesToday || state == schedule.StateNotYetOpen || state == schedule.StateClosed {
		result.Verdict = attendance.Verdict{
			Status: attendance.VerdictRejected,
			Reason: attendance.ReasonWindowClosed,
		}
		return result, nil
	}

	if in.Geofence != nil {
		within := in.Position != nil && utils.IsWithinRadius(
			in.Position.Latitude, in.Position.Longitude,
			in.Geofence.Latitude, in.Geofence.Longitude,
			in.Geofence.RadiusMeters,
		)
		if !within {
			result.Verdict = attendance.Verdict{
				Status: attendance.VerdictRejected,
				Reason: attendance.ReasonOutsideGeofence,
			}
			return result, nil
		}
	}

	if in.RequireFace {
		if len(in.Enrolled) == 0 {
			return EvaluationResult{}, face.ErrNotEnrolled
		}
		match, err := e.matcher.Match(in.Enrolled, in.Sample)
		if err != nil {
			return EvaluationResult{}, err
		}
		if !match {
			result.Verdict = attendance.Verdict{
				Status: attendance.VerdictRejected,
				Reason: attendance.ReasonFaceMismatch,
			}
			return result, nil
		}
	}

	if state == schedule.StateLate {
		result.Verdict = attendance.Verdict{Status: attendance.VerdictLate}
	} else {
		result.Verdict = attendance.Verdict{Status: attendance.VerdictPresent}
	}
	return result, nil
}
