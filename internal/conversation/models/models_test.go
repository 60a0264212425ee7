package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit/internal/conversation/validation"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestStepSequence(t *testing.T) {
	var fields []validation.Field
	for step := FirstStep; step != StepComplete; step = step.Next() {
		fields = append(fields, step.Field())
	}
	assert.Equal(t, []validation.Field{
		validation.FieldName,
		validation.FieldAge,
		validation.FieldBirthDate,
		validation.FieldCity,
		validation.FieldNickname,
		validation.FieldGameID,
		validation.FieldCategory,
	}, fields)

	assert.Equal(t, StepComplete, StepComplete.Next())
	assert.Equal(t, validation.Field(""), StepComplete.Field())
	assert.Equal(t, "complete", StepComplete.String())
	assert.Equal(t, "unknown", Step(0).String())
}

func TestSessionRecord(t *testing.T) {
	s, err := NewSession(42, "ann", fixedNow)
	require.NoError(t, err)
	require.NoError(t, s.CheckPrefix())

	values := []string{"Ann Lee", "20", "01.01.2000", "Kyiv", "annL", "G123", "Academy"}
	for i, v := range values {
		require.NoError(t, s.Record(v, fixedNow.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, s.CheckPrefix())
	}
	assert.True(t, s.IsComplete())
	assert.Error(t, s.Record("extra", fixedNow))

	n, err := s.ToNewSubmission(fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", n.Name)
	assert.Equal(t, "G123", n.GameID)
	assert.Equal(t, "Academy", n.Category)
	assert.NoError(t, n.Validate())
}

func TestNewSessionRequiresApplicant(t *testing.T) {
	_, err := NewSession(0, "", fixedNow)
	require.Error(t, err)
}

func TestToNewSubmissionRequiresComplete(t *testing.T) {
	s, err := NewSession(42, "", fixedNow)
	require.NoError(t, err)
	_, err = s.ToNewSubmission(fixedNow)
	require.Error(t, err)
}

func TestCheckPrefixDetectsViolations(t *testing.T) {
	s, err := NewSession(42, "", fixedNow)
	require.NoError(t, err)

	s.Draft[validation.FieldCity] = "Kyiv"
	assert.Error(t, s.CheckPrefix(), "value ahead of current step")

	s, _ = NewSession(42, "", fixedNow)
	s.Step = StepCity
	assert.Error(t, s.CheckPrefix(), "missing values behind current step")
}

func TestClone(t *testing.T) {
	s, err := NewSession(42, "", fixedNow)
	require.NoError(t, err)
	require.NoError(t, s.Record("Ann", fixedNow))

	c := s.Clone()
	c.Draft[validation.FieldName] = "changed"
	assert.Equal(t, "Ann", s.Draft[validation.FieldName])
}
