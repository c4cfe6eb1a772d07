package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirclass/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirclass/hadir-backend-go/internal/domain/class"
	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
)

var jakarta = time.FixedZone("WIB", 7*3600)

// 2026-03-02 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, jakarta)
}

func mondayMorningClass() schedule.Descriptor {
	return schedule.Descriptor{
		Type: schedule.TypeWeekly,
		Weekly: []schedule.WeeklyEntry{
			{Day: time.Monday, Time: schedule.TimeOfDay{Hour: 8}},
		},
	}
}

func campusFence() *class.Geofence {
	return &class.Geofence{Latitude: -6.2, Longitude: 106.8167, RadiusMeters: 100}
}

func uniformDescriptor(v float32) face.Descriptor {
	d := make(face.Descriptor, face.DescriptorLength)
	for i := range d {
		d[i] = v
	}
	return d
}

func TestEngineEvaluate(t *testing.T) {
	engine := NewEngine(schedule.DefaultPolicy(), face.NewMatcher(0))

	enrolled := uniformDescriptor(0.5)
	atCampus := &attendance.Position{Latitude: -6.2, Longitude: 106.8167}
	// Roughly 500m north of the fence center.
	farAway := &attendance.Position{Latitude: -6.1955, Longitude: 106.8167}

	tests := []struct {
		name       string
		now        time.Time
		position   *attendance.Position
		sample     face.Descriptor
		wantStatus attendance.VerdictStatus
		wantReason string
	}{
		{
			name:       "on time at campus with matching face",
			now:        mondayAt(8, 4),
			position:   atCampus,
			sample:     enrolled,
			wantStatus: attendance.VerdictPresent,
		},
		{
			name:       "within late grace",
			now:        mondayAt(8, 15),
			position:   atCampus,
			sample:     enrolled,
			wantStatus: attendance.VerdictLate,
		},
		{
			name:       "outside geofence during the window",
			now:        mondayAt(8, 4),
			position:   farAway,
			sample:     enrolled,
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonOutsideGeofence,
		},
		{
			name:       "after the late grace",
			now:        mondayAt(8, 26),
			position:   atCampus,
			sample:     enrolled,
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonWindowClosed,
		},
		{
			name:       "before the window opens",
			now:        mondayAt(7, 54),
			position:   atCampus,
			sample:     enrolled,
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonWindowClosed,
		},
		{
			name:       "face mismatch during the window",
			now:        mondayAt(8, 4),
			position:   atCampus,
			sample:     uniformDescriptor(0.9),
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonFaceMismatch,
		},
		{
			name:       "geofence wins over face when both would fail",
			now:        mondayAt(8, 4),
			position:   farAway,
			sample:     uniformDescriptor(0.9),
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonOutsideGeofence,
		},
		{
			name:       "closed window wins over everything",
			now:        mondayAt(12, 0),
			position:   farAway,
			sample:     uniformDescriptor(0.9),
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonWindowClosed,
		},
		{
			name:       "missing position with a geofenced class",
			now:        mondayAt(8, 4),
			position:   nil,
			sample:     enrolled,
			wantStatus: attendance.VerdictRejected,
			wantReason: attendance.ReasonOutsideGeofence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Evaluate(EvaluationInput{
				Schedule:    mondayMorningClass(),
				Geofence:    campusFence(),
				Position:    tt.position,
				RequireFace: true,
				Enrolled:    enrolled,
				Sample:      tt.sample,
				Now:         tt.now,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Verdict.Status)
			assert.Equal(t, tt.wantReason, result.Verdict.Reason)
		})
	}
}

func TestEngineEvaluateSkipsDisabledChecks(t *testing.T) {
	engine := NewEngine(schedule.DefaultPolicy(), face.NewMatcher(0))

	// No geofence, no face requirement: the window alone decides.
	result, err := engine.Evaluate(EvaluationInput{
		Schedule: mondayMorningClass(),
		Now:      mondayAt(8, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.VerdictPresent, result.Verdict.Status)
	assert.True(t, result.FiresToday)
	assert.Equal(t, schedule.StateOnTime, result.State)
}

func TestEngineEvaluateWrongDay(t *testing.T) {
	engine := NewEngine(schedule.DefaultPolicy(), face.NewMatcher(0))

	// Tuesday: the weekly schedule does not fire.
	result, err := engine.Evaluate(EvaluationInput{
		Schedule: mondayMorningClass(),
		Now:      mondayAt(8, 4).AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.False(t, result.FiresToday)
	assert.Equal(t, attendance.VerdictRejected, result.Verdict.Status)
	assert.Equal(t, attendance.ReasonWindowClosed, result.Verdict.Reason)
}

func TestEngineEvaluateErrors(t *testing.T) {
	engine := NewEngine(schedule.DefaultPolicy(), face.NewMatcher(0))

	t.Run("missing enrollment", func(t *testing.T) {
		_, err := engine.Evaluate(EvaluationInput{
			Schedule:    mondayMorningClass(),
			RequireFace: true,
			Sample:      uniformDescriptor(0.5),
			Now:         mondayAt(8, 4),
		})
		assert.ErrorIs(t, err, face.ErrNotEnrolled)
	})

	t.Run("malformed sample", func(t *testing.T) {
		_, err := engine.Evaluate(EvaluationInput{
			Schedule:    mondayMorningClass(),
			RequireFace: true,
			Enrolled:    uniformDescriptor(0.5),
			Sample:      face.Descriptor{1, 2, 3},
			Now:         mondayAt(8, 4),
		})
		assert.ErrorIs(t, err, face.ErrDimensionMismatch)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		_, err := engine.Evaluate(EvaluationInput{
			Schedule: schedule.Descriptor{Type: schedule.TypeWeekly},
			Now:      mondayAt(8, 4),
		})
		assert.Error(t, err)
	})
}
