package controller

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
)

func TestExpandConditionsEmptyInputSkipsDatabase(t *testing.T) {
	// nil DB: any query would panic, so passing proves the short-circuit
	ac := NewAssessmentController(nil, log.New(io.Discard, "", 0), nil, nil)

	for _, names := range [][]string{nil, {}} {
		details, err := ac.expandConditions(names, models.ConditionTypeWeather)
		require.NoError(t, err)
		assert.NotNil(t, details)
		assert.Empty(t, details)
	}
}
