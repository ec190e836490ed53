package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hr-backend-go/internal/domain/attendance"
)

func testPolicy(policyType string, graceMinutes int) attendance.Policy {
	return attendance.Policy{
		ID:           "policy-1",
		PolicyType:   policyType,
		ShiftStart:   time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		ShiftEnd:     time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		GraceMinutes: graceMinutes,
	}
}

func TestStandardRuleEvaluate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yangon")
	require.NoError(t, err)

	policy := testPolicy(PolicyTypeStandard, 15)
	rule := StandardRule{}

	tests := []struct {
		name     string
		checkIn  time.Time
		expected attendance.Status
	}{
		{
			name:     "before shift start",
			checkIn:  time.Date(2026, 3, 2, 8, 30, 0, 0, loc),
			expected: attendance.StatusPresent,
		},
		{
			name:     "within grace period",
			checkIn:  time.Date(2026, 3, 2, 9, 10, 0, 0, loc),
			expected: attendance.StatusPresent,
		},
		{
			name:     "exactly at deadline",
			checkIn:  time.Date(2026, 3, 2, 9, 15, 0, 0, loc),
			expected: attendance.StatusPresent,
		},
		{
			name:     "one minute past deadline",
			checkIn:  time.Date(2026, 3, 2, 9, 16, 0, 0, loc),
			expected: attendance.StatusLate,
		},
		{
			name:     "one second past deadline",
			checkIn:  time.Date(2026, 3, 2, 9, 15, 1, 0, loc),
			expected: attendance.StatusLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rule.Evaluate(policy, tt.checkIn, loc))
		})
	}
}

func TestStandardRuleZeroGrace(t *testing.T) {
	loc := time.UTC
	policy := testPolicy(PolicyTypeStandard, 0)
	rule := StandardRule{}

	assert.Equal(t, attendance.StatusPresent,
		rule.Evaluate(policy, time.Date(2026, 3, 2, 9, 0, 0, 0, loc), loc))
	assert.Equal(t, attendance.StatusLate,
		rule.Evaluate(policy, time.Date(2026, 3, 2, 9, 0, 1, 0, loc), loc))
}

func TestRemoteWorkRuleEvaluate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yangon")
	require.NoError(t, err)

	policy := testPolicy(PolicyTypeRemoteWork, 15)
	rule := RemoteWorkRule{}

	tests := []struct {
		name     string
		checkIn  time.Time
		expected attendance.Status
	}{
		{
			name:     "morning check-in",
			checkIn:  time.Date(2026, 3, 2, 9, 45, 0, 0, loc),
			expected: attendance.StatusPresent,
		},
		{
			name:     "late afternoon still within shift",
			checkIn:  time.Date(2026, 3, 2, 16, 59, 0, 0, loc),
			expected: attendance.StatusPresent,
		},
		{
			name:     "exactly at shift end",
			checkIn:  time.Date(2026, 3, 2, 17, 0, 0, 0, loc),
			expected: attendance.StatusPresent,
		},
		{
			name:     "after shift end",
			checkIn:  time.Date(2026, 3, 2, 17, 1, 0, 0, loc),
			expected: attendance.StatusLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rule.Evaluate(policy, tt.checkIn, loc))
		})
	}
}

func TestRuleEvaluateNormalizesTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yangon")
	require.NoError(t, err)

	policy := testPolicy(PolicyTypeStandard, 15)
	rule := StandardRule{}

	// 02:40 UTC is 09:10 in Yangon (UTC+6:30), inside the grace period.
	utcCheckIn := time.Date(2026, 3, 2, 2, 40, 0, 0, time.UTC)
	assert.Equal(t, attendance.StatusPresent, rule.Evaluate(policy, utcCheckIn, loc))

	// 02:46 UTC is 09:16 in Yangon, one minute past the deadline.
	utcLate := time.Date(2026, 3, 2, 2, 46, 0, 0, time.UTC)
	assert.Equal(t, attendance.StatusLate, rule.Evaluate(policy, utcLate, loc))
}
