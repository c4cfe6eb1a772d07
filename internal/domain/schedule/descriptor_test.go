package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirclass/hadir-backend-go/internal/pkg/validator"
)

func TestDescriptor_UnmarshalWeekly(t *testing.T) {
	t.Parallel()

	raw := `{"type":"Weekly","days":[{"day":"Monday","time":"08:00"},{"day":"Thursday","time":"13:30"}]}`

	var d Descriptor
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	require.NoError(t, d.Validate())

	assert.Equal(t, TypeWeekly, d.Type)
	require.Len(t, d.Weekly, 2)
	assert.Equal(t, time.Monday, d.Weekly[0].Day)
	assert.Equal(t, TimeOfDay{Hour: 8}, d.Weekly[0].Time)
	assert.Equal(t, time.Thursday, d.Weekly[1].Day)
	assert.Equal(t, TimeOfDay{Hour: 13, Minute: 30}, d.Weekly[1].Time)
}

func TestDescriptor_UnmarshalOneTime(t *testing.T) {
	t.Parallel()

	raw := `{"type":"One Time","date":"2026-03-02T08:00:00+07:00"}`

	var d Descriptor
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	require.NoError(t, d.Validate())

	assert.Equal(t, TypeOneTime, d.Type)
	assert.Equal(t, 8, d.OneTime.Hour())
}

func TestDescriptor_UnmarshalMonthly(t *testing.T) {
	t.Parallel()

	raw := `{"type":"Monthly","date":15,"time":"09:45"}`

	var d Descriptor
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	require.NoError(t, d.Validate())

	assert.Equal(t, 15, d.DayOfMonth)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 45}, d.MonthlyTime)
}

func TestDescriptor_UnmarshalRejectsUnknownType(t *testing.T) {
	t.Parallel()

	var d Descriptor
	err := json.Unmarshal([]byte(`{"type":"Fortnightly"}`), &d)
	assert.Error(t, err)
}

func TestDescriptor_UnmarshalRejectsBadWeekday(t *testing.T) {
	t.Parallel()

	var d Descriptor
	err := json.Unmarshal([]byte(`{"type":"Weekly","days":[{"day":"Moonday","time":"08:00"}]}`), &d)
	assert.Error(t, err)
}

func TestDescriptor_RoundTrip(t *testing.T) {
	t.Parallel()

	descriptors := []Descriptor{
		{Type: TypeOneTime, OneTime: time.Date(2026, 3, 2, 8, 0, 0, 0, jakarta)},
		{Type: TypeWeekly, Weekly: []WeeklyEntry{{Day: time.Friday, Time: TimeOfDay{Hour: 10, Minute: 15}}}},
		{Type: TypeMonthly, DayOfMonth: 31, MonthlyTime: TimeOfDay{Hour: 8}},
	}

	for _, d := range descriptors {
		raw, err := json.Marshal(d)
		require.NoError(t, err)

		var back Descriptor
		require.NoError(t, json.Unmarshal(raw, &back))

		switch d.Type {
		case TypeOneTime:
			assert.True(t, d.OneTime.Equal(back.OneTime))
		default:
			assert.Equal(t, d, back)
		}
	}
}

func TestDescriptor_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		d       Descriptor
		wantErr bool
	}{
		{"weekly without entries", Descriptor{Type: TypeWeekly}, true},
		{"monthly day zero", Descriptor{Type: TypeMonthly, DayOfMonth: 0}, true},
		{"monthly day thirty-two", Descriptor{Type: TypeMonthly, DayOfMonth: 32}, true},
		{"monthly day thirty-one", Descriptor{Type: TypeMonthly, DayOfMonth: 31}, false},
		{"one-time zero instant", Descriptor{Type: TypeOneTime}, true},
		{"unknown type", Descriptor{Type: "Sometimes"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.wantErr {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tod, err := ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, tod)

	for _, bad := range []string{"24:00", "8am", "", "08:60"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
