package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseData(t *testing.T) {
	tests := []struct {
		raw, key, payload string
	}{
		{"\fpick_month|2026-10", "pick_month", "2026-10"},
		{"\fcal_day|2-10-2026", "cal_day", "2-10-2026"},
		{"addshift_today", "addshift_today", ""},
		{"\fmonth_prev|", "month_prev", ""},
		{"\fgoal_delete|a|b", "goal_delete", "a|b"},
	}
	for _, tt := range tests {
		key, payload := ParseData(tt.raw)
		assert.Equal(t, tt.key, key, tt.raw)
		assert.Equal(t, tt.payload, payload, tt.raw)
	}
}
