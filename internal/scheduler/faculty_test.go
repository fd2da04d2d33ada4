package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-api/internal/models"
)

func TestPickFaculty(t *testing.T) {
	faculty := []models.Faculty{
		{ID: "history", Department: "History"},
		{ID: "cs", Department: "Department of Computer Science"},
		{ID: "ml", Specializations: []string{"Deep learning", "MACHINE vision"}},
		{ID: "math", Department: "Applied Mathematics"},
		{ID: "prob", Specializations: []string{"Probability"}},
		{ID: "iot", Specializations: []string{"IoT Systems"}},
		{ID: "mech", Department: "Mechanical"},
		{ID: "thermo", Specializations: []string{"thermodynamics"}},
	}

	cases := []struct {
		code     string
		want     string
		fallback bool
	}{
		{code: "CS101", want: "cs"},
		{code: "ai300", want: "cs"},
		{code: "MA201", want: "math"},
		{code: "EE101", want: "iot"},
		{code: "ME410", want: "mech"},
		{code: "PH100", want: "history", fallback: true},
		{code: "C", want: "history", fallback: true},
		{code: "", want: "history", fallback: true},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, fallback := pickFaculty(tc.code, faculty)
			assert.Equal(t, tc.want, got.ID)
			assert.Equal(t, tc.fallback, fallback)
		})
	}
}

func TestPickFacultyMatchesSpecializationWhenNoDepartment(t *testing.T) {
	faculty := []models.Faculty{
		{ID: "first", Department: "Physics"},
		{ID: "ai", Specializations: []string{"Artificial Intelligence"}},
	}

	got, fallback := pickFaculty("CS500", faculty)

	assert.Equal(t, "ai", got.ID)
	assert.False(t, fallback)
}

func TestPickFacultyFallsBackWhenRuleUnmatched(t *testing.T) {
	faculty := []models.Faculty{{ID: "first", Department: "Physics"}, {ID: "second", Department: "Chemistry"}}

	got, fallback := pickFaculty("ME100", faculty)

	assert.Equal(t, "first", got.ID)
	assert.True(t, fallback)
}
