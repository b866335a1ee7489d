package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dp(s string) *time.Time {
	t := d(s)
	return &t
}

func intp(n int) *int { return &n }

func TestDateRange_OverlapsInclusive(t *testing.T) {
	a := NewDateRange(d("2025-06-11"), d("2025-06-14"))

	assert.True(t, a.Overlaps(NewDateRange(d("2025-06-14"), d("2025-06-20"))), "shared boundary day overlaps")
	assert.True(t, a.Overlaps(NewDateRange(d("2025-06-12"), d("2025-06-12"))))
	assert.False(t, a.Overlaps(NewDateRange(d("2025-06-15"), d("2025-06-20"))))
	assert.False(t, a.Overlaps(NewDateRange(d("2025-06-01"), d("2025-06-10"))))
}

func TestDateRange_DaysAndShift(t *testing.T) {
	r := NewDateRange(d("2025-06-28"), d("2025-07-02"))
	assert.Equal(t, 4, r.Days())

	shifted := r.Shift(3)
	assert.Equal(t, "2025-07-01", FormatDate(shifted.Start))
	assert.Equal(t, "2025-07-05", FormatDate(shifted.End))
	assert.Equal(t, 4, shifted.Days())
}

func TestValidateRange(t *testing.T) {
	require.NoError(t, ValidateRange(d("2025-06-01"), d("2025-06-01")))

	err := ValidateRange(d("2025-06-02"), d("2025-06-01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestProject_RangeRequiresBothDates(t *testing.T) {
	p := &Project{StartDate: dp("2025-06-01")}
	_, ok := p.Range()
	assert.False(t, ok)
	assert.NoError(t, p.Validate(), "partial schedule is allowed")

	p.EndDate = dp("2025-05-01")
	assert.ErrorIs(t, p.Validate(), ErrInvalidRange)
}

func TestTask_ValidateRequiresDates(t *testing.T) {
	task := &Task{ID: "t1", Start: dp("2025-06-01")}
	assert.ErrorIs(t, task.Validate(), ErrInvalidRange)

	task.End = dp("2025-06-03")
	assert.NoError(t, task.Validate())
}

func TestSortProjects_UnorderedLast(t *testing.T) {
	projects := []*Project{
		{ID: "none-1"},
		{ID: "second", Order: intp(1)},
		{ID: "none-2"},
		{ID: "first", Order: intp(0)},
	}

	SortProjects(projects)

	ids := []string{projects[0].ID, projects[1].ID, projects[2].ID, projects[3].ID}
	assert.Equal(t, []string{"first", "second", "none-1", "none-2"}, ids)
}

func TestWorker_Age(t *testing.T) {
	w := &Worker{BirthDate: dp("1990-06-15")}

	age, ok := w.Age(d("2025-06-14"))
	require.True(t, ok)
	assert.Equal(t, 34, age)

	age, ok = w.Age(d("2025-06-15"))
	require.True(t, ok)
	assert.Equal(t, 35, age)

	_, ok = (&Worker{}).Age(d("2025-06-15"))
	assert.False(t, ok)
}

func TestCellKey_StringAndParse(t *testing.T) {
	key := CellKey{WorkerID: "5f2c-91ab", Date: d("2025-06-13")}
	assert.Equal(t, "w5f2c-91ab-2025-06-13", key.String())

	parsed, err := ParseCellKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, "5f2c-91ab", parsed.WorkerID)
	assert.Equal(t, "2025-06-13", FormatDate(parsed.Date))
}

func TestParseCellKey_Invalid(t *testing.T) {
	for _, s := range []string{"", "x1-2025-06-13", "w-2025-06-13", "w1-2025-13-40", "w12025-06-13"} {
		_, err := ParseCellKey(s)
		assert.ErrorIs(t, err, ErrInvalidCellKey, "input %q", s)
	}
}

func TestDescribeAssignment(t *testing.T) {
	names := map[string]string{"p1": "North Bridge"}

	assert.Equal(t, "North Bridge", DescribeAssignment(ProjectAssignment{ProjectID: "p1"}, names))
	assert.Equal(t, "p2", DescribeAssignment(ProjectAssignment{ProjectID: "p2"}, names))
	assert.Equal(t, "day off", DescribeAssignment(StatusAssignment{Status: StatusDayOff}, names))
	assert.Equal(t, "half day off", DescribeAssignment(StatusAssignment{Status: StatusHalfDayOff}, names))
}

func TestTaskBarColor(t *testing.T) {
	assert.Equal(t, "teal-light", TaskBarColor("teal"))
	assert.Equal(t, "#123456", TaskBarColor("#123456"))
}
