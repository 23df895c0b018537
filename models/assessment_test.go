package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCanBeViewedBy(t *testing.T) {
	assessment := Assessment{
		CreatedBy:       7,
		OnSiteArborists: datatypes.JSON(`[3, "12", 7]`),
	}

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"nil user", nil, false},
		{"admin sees everything", &User{ID: 99, Role: RoleAdmin}, true},
		{"creator", &User{ID: 7, Role: RoleUser}, true},
		{"crew member by numeric id", &User{ID: 3, Role: RoleUser}, true},
		{"crew member by string id", &User{ID: 12, Role: RoleUser}, true},
		{"unrelated user", &User{ID: 42, Role: RoleUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assessment.CanBeViewedBy(tt.user))
		})
	}
}

func TestCanBeViewedByMalformedCrewList(t *testing.T) {
	assessment := Assessment{
		CreatedBy:       1,
		OnSiteArborists: datatypes.JSON(`{"not":"a list"}`),
	}
	assert.False(t, assessment.CanBeViewedBy(&User{ID: 5, Role: RoleUser}))
	assert.True(t, assessment.CanBeViewedBy(&User{ID: 1, Role: RoleUser}))
}

func TestDeletableBy(t *testing.T) {
	stockholm, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	assessment := Assessment{CreatedBy: 4, CreatedAt: created}

	t.Run("creator on the same day", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)
		assert.True(t, assessment.DeletableBy(4, now, stockholm))
	})

	t.Run("non-creator on the same day", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)
		assert.False(t, assessment.DeletableBy(8, now, stockholm))
	})

	t.Run("creator on the next day", func(t *testing.T) {
		now := time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC)
		assert.False(t, assessment.DeletableBy(4, now, stockholm))
	})

	t.Run("local midnight boundary", func(t *testing.T) {
		// 23:50 UTC on May 1st is already May 2nd in Stockholm (UTC+2),
		// so the window on a May-1st-UTC record has closed.
		lateCreated := Assessment{CreatedBy: 4, CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
		now := time.Date(2024, 5, 1, 23, 50, 0, 0, time.UTC)
		assert.False(t, lateCreated.DeletableBy(4, now, stockholm))
	})
}

func TestSameLocalDay(t *testing.T) {
	stockholm, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	a := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC) // May 2nd local
	b := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)  // May 2nd local

	assert.True(t, SameLocalDay(a, b, stockholm))
	assert.False(t, SameLocalDay(a, b, time.UTC))
}

func TestGroupAssessmentsByDate(t *testing.T) {
	stockholm, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	assessments := []Assessment{
		{ID: 1, JobSiteAddress: "Storgatan 1", CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, JobSiteAddress: "Lillgatan 2", CreatedAt: time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)},
		{ID: 3, JobSiteAddress: "Kungsgatan 3", CreatedAt: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)},
	}

	grouped := GroupAssessmentsByDate(assessments, stockholm)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["2024-05-01"], 1)
	assert.Equal(t, uint(1), grouped["2024-05-01"][0].ID)

	// the 22:30 UTC record crosses local midnight into May 2nd
	require.Len(t, grouped["2024-05-02"], 2)
	assert.Equal(t, uint(2), grouped["2024-05-02"][0].ID)
	assert.Equal(t, "Kungsgatan 3", grouped["2024-05-02"][1].Address)
}

func TestGroupAssessmentsByDateEmpty(t *testing.T) {
	grouped := GroupAssessmentsByDate(nil, time.UTC)
	assert.Empty(t, grouped)
}
