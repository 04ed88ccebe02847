package prd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("full document round trips", func(t *testing.T) {
		doc := Sample("a recipe sharing app")

		data, err := doc.Clone()
		require.NoError(t, err)
		assert.Equal(t, doc, data)
	})

	t.Run("missing fields are tolerated", func(t *testing.T) {
		doc, err := Decode([]byte(`{"projectSummary":{"whatUserWants":"A todo app"}}`))
		require.NoError(t, err)

		assert.Equal(t, "A todo app", doc.ProjectSummary.WhatUserWants)
		assert.NotNil(t, doc.CoreFeatures)
		assert.Empty(t, doc.CoreFeatures)
		assert.NotNil(t, doc.MVPScope.Wont)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		_, err := Decode([]byte(`{"projectSummary":`))
		assert.Error(t, err)
	})
}

func TestNormalize(t *testing.T) {
	doc := &Document{
		CoreFeatures: []Feature{{Title: "Auth", Priority: PriorityMust}},
		DataModels:   []Entity{{Name: "User"}},
	}
	doc.Normalize()

	assert.NotNil(t, doc.ProjectSummary.TargetPlatforms)
	assert.NotNil(t, doc.ProjectSummary.ExpectedOutcomes)
	assert.NotNil(t, doc.CoreFeatures[0].AcceptanceCriteria)
	assert.NotNil(t, doc.SystemRequirements.TechStack)
	assert.NotNil(t, doc.SystemRequirements.Libraries)
	assert.NotNil(t, doc.DataModels[0].Attributes)
	assert.NotNil(t, doc.DataModels[0].Relationships)
	assert.NotNil(t, doc.UserFlow)
	assert.NotNil(t, doc.MVPScope.Must)
	assert.NotNil(t, doc.MVPScope.Should)
	assert.NotNil(t, doc.MVPScope.Could)
	assert.NotNil(t, doc.MVPScope.Wont)
}

func TestMustFeatures(t *testing.T) {
	doc := &Document{
		CoreFeatures: []Feature{
			{Title: "Auth", Priority: PriorityMust},
			{Title: "Export", Priority: PriorityShould},
			{Title: "Dashboard", Priority: PriorityMust},
			{Title: "Notifications", Priority: PriorityCould},
		},
	}

	must := doc.MustFeatures()
	require.Len(t, must, 2)
	assert.Equal(t, "Auth", must[0].Title)
	assert.Equal(t, "Dashboard", must[1].Title)
}

func TestClone(t *testing.T) {
	doc := Sample("a fitness tracker")

	clone, err := doc.Clone()
	require.NoError(t, err)

	clone.CoreFeatures[0].Title = "changed"
	assert.NotEqual(t, "changed", doc.CoreFeatures[0].Title)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"a\":1}\n```",
			expected: "{\"a\":1}",
		},
		{
			name:     "bare fence",
			input:    "```\n{\"a\":1}\n```",
			expected: "{\"a\":1}",
		},
		{
			name:     "no fence",
			input:    "{\"a\":1}",
			expected: "{\"a\":1}",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"a\":1}\n  ",
			expected: "{\"a\":1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFences(tt.input))
		})
	}
}

func TestSample(t *testing.T) {
	doc := Sample("a plant care reminder app")

	assert.Contains(t, doc.ProjectSummary.WhatUserWants, "a plant care reminder app")
	assert.NotEmpty(t, doc.CoreFeatures)
	assert.NotEmpty(t, doc.DataModels)
	assert.NotEmpty(t, doc.UserFlow)
	assert.NotEmpty(t, doc.MVPScope.Must)

	for _, f := range doc.CoreFeatures {
		assert.NotEmpty(t, f.AcceptanceCriteria, "feature %q should have criteria", f.Title)
	}
}
