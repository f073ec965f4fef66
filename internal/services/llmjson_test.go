package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONResponse(t *testing.T) {
	var verdict OracleVerdict
	err := parseJSONResponse("```json\n{\"matched_skills\": [\"Go\"], \"missing_skills\": [], \"rationale\": \"ok\"}\n```", &verdict)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, verdict.MatchedSkills)
	assert.Equal(t, "ok", verdict.Rationale)
}

func TestParseJSONResponseWithSurroundingProse(t *testing.T) {
	var verdict OracleVerdict
	err := parseJSONResponse("Here is my evaluation:\n{\"rationale\": \"fine\"}\nHope that helps!", &verdict)

	require.NoError(t, err)
	assert.Equal(t, "fine", verdict.Rationale)
}

func TestParseJSONResponseInvalid(t *testing.T) {
	var verdict OracleVerdict
	err := parseJSONResponse("the model refused to answer", &verdict)
	assert.Error(t, err)
}
