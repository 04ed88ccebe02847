package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibespecs/vibespecs/internal/prd"
)

func testDocument() *prd.Document {
	doc := &prd.Document{
		ProjectSummary: prd.ProjectSummary{
			WhatUserWants:    "A habit tracking app",
			TargetAudience:   "People building routines",
			TargetPlatforms:  []string{"Web"},
			ExpectedOutcomes: []string{"Daily habit completion"},
		},
		CoreFeatures: []prd.Feature{
			{
				Title:              "Habit Creation",
				Description:        "Create and configure habits",
				UserStory:          "As a user, I want to create habits so that I can track them",
				AcceptanceCriteria: []string{"Habits can be created with a name", "Habits have a schedule"},
				UXBehavior:         "Inline form with validation",
				Priority:           prd.PriorityMust,
			},
			{
				Title:              "Streak Sharing",
				Description:        "Share streaks with friends",
				UserStory:          "As a user, I want to share streaks",
				AcceptanceCriteria: []string{"Streaks can be shared via link"},
				UXBehavior:         "Share sheet",
				Priority:           prd.PriorityShould,
			},
		},
		SystemRequirements: prd.SystemRequirements{
			TechStack:      []string{"React", "TypeScript"},
			Libraries:      []string{"tailwindcss", "zod"},
			Authentication: "Supabase Auth",
			Database:       "PostgreSQL",
			Deployment:     "Vercel",
		},
		DataModels: []prd.Entity{
			{
				Name: "Habit",
				Attributes: []prd.Attribute{
					{Name: "id", Type: "uuid", Required: true, Description: "Primary key"},
					{Name: "name", Type: "string", Required: true, Description: "Display name"},
					{Name: "notes", Type: "string", Required: false, Description: "Optional notes"},
				},
				Relationships: []string{},
			},
		},
		UserFlow: []prd.FlowStep{
			{ID: "1", Title: "Sign Up", Description: "Create an account"},
			{ID: "2", Title: "Create Habit", Description: "Add a first habit"},
		},
		MVPScope: prd.MVPScope{
			Must:   []string{"Habit creation"},
			Should: []string{"Streak sharing"},
			Could:  []string{},
			Wont:   []string{"Mobile apps"},
		},
	}
	doc.Normalize()
	return doc
}

func TestRender(t *testing.T) {
	doc := testDocument()

	t.Run("dispatches all formats", func(t *testing.T) {
		for _, format := range []Format{FormatMarkdown, FormatPrompt, FormatSteps, FormatJSON} {
			out, err := Render(doc, format)
			require.NoError(t, err, "format %s", format)
			assert.NotEmpty(t, out)
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := Render(doc, Format("pdf"))
		assert.Error(t, err)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := Render(doc, FormatMarkdown)
		require.NoError(t, err)
		second, err := Render(doc, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestBuildPrompt(t *testing.T) {
	doc := testDocument()
	out := BuildPrompt(doc)

	t.Run("only must features contribute", func(t *testing.T) {
		assert.Contains(t, out, "- Habit Creation: Create and configure habits")
		assert.NotContains(t, out, "Streak Sharing")
	})

	t.Run("fixed page and route templates", func(t *testing.T) {
		assert.Contains(t, out, "1. Landing Page - Hero section, features overview, CTA")
		assert.Contains(t, out, "- DELETE /api/projects/:id - Delete project")
	})

	t.Run("required attributes are marked", func(t *testing.T) {
		assert.Contains(t, out, "- id: uuid (required)")
		assert.Contains(t, out, "- notes: string\n")
	})

	t.Run("criteria flattened from must features only", func(t *testing.T) {
		assert.Contains(t, out, "- Habits can be created with a name")
		assert.NotContains(t, out, "Streaks can be shared via link")
	})

	t.Run("closing instruction", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(out, "Build this app step by step, starting with the project setup and authentication."))
	})
}

func TestAgentSteps(t *testing.T) {
	doc := testDocument()
	out := AgentSteps(doc)

	t.Run("has all eight steps", func(t *testing.T) {
		for _, heading := range []string{
			"## Step 1: Setup Project",
			"## Step 2: Configure Design System",
			"## Step 3: Implement Authentication",
			"## Step 4: Create Database Schema",
			"## Step 5: Build Core Features",
			"## Step 6: Implement User Flow",
			"## Step 7: Add Polish",
			"## Step 8: Test & Deploy",
		} {
			assert.Contains(t, out, heading)
		}
	})

	t.Run("schema step lists every attribute without required markers", func(t *testing.T) {
		assert.Contains(t, out, "### Habit Table")
		assert.Contains(t, out, "- id: uuid")
		assert.Contains(t, out, "- notes: string")
		assert.NotContains(t, out, "(required)")
	})

	t.Run("feature step covers must features with stories", func(t *testing.T) {
		assert.Contains(t, out, "### 1. Habit Creation")
		assert.Contains(t, out, "User Story: As a user, I want to create habits so that I can track them")
		assert.NotContains(t, out, "Streak Sharing")
	})

	t.Run("flow steps numbered by position", func(t *testing.T) {
		assert.Contains(t, out, "1. Sign Up: Create an account")
		assert.Contains(t, out, "2. Create Habit: Add a first habit")
	})

	t.Run("deployment target in final step", func(t *testing.T) {
		assert.Contains(t, out, "- Deploy to Vercel")
	})
}

func TestMarkdown(t *testing.T) {
	doc := testDocument()
	out := Markdown(doc)

	t.Run("numbered section headings", func(t *testing.T) {
		for _, heading := range []string{
			"# Product Requirements Document",
			"## 1. Project Summary",
			"## 2. Core Features",
			"## 3. System Requirements",
			"## 4. Data Models",
			"## 5. User Flow",
			"## 6. MVP Scope (MoSCoW)",
		} {
			assert.Contains(t, out, heading)
		}
	})

	t.Run("all features appear with priority tags", func(t *testing.T) {
		assert.Contains(t, out, "### Habit Creation [MUST]")
		assert.Contains(t, out, "### Streak Sharing [SHOULD]")
	})

	t.Run("criteria render as checkboxes", func(t *testing.T) {
		assert.Contains(t, out, "- [ ] Habits can be created with a name")
	})

	t.Run("attribute table with required column", func(t *testing.T) {
		assert.Contains(t, out, "| Attribute | Type | Required | Description |")
		assert.Contains(t, out, "| id | uuid | Yes | Primary key |")
		assert.Contains(t, out, "| notes | string | No | Optional notes |")
	})

	t.Run("empty relationships render as None", func(t *testing.T) {
		assert.Contains(t, out, "**Relationships:** None")
	})

	t.Run("all four scope headings render even when a bucket is empty", func(t *testing.T) {
		assert.Contains(t, out, "### Must Have")
		assert.Contains(t, out, "### Should Have")
		assert.Contains(t, out, "### Could Have")
		assert.Contains(t, out, "### Won't Have (This Release)")
	})
}

func TestMarkdownEmptyDocument(t *testing.T) {
	doc := &prd.Document{}
	doc.Normalize()

	out := Markdown(doc)
	assert.Contains(t, out, "## 1. Project Summary")
	assert.Contains(t, out, "### Won't Have (This Release)")
	assert.NotContains(t, out, "- \n", "empty lists should not leave dangling bullets")
}

func TestRawJSON(t *testing.T) {
	doc := testDocument()

	out, err := RawJSON(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "projectSummary")
	assert.Contains(t, decoded, "mvpScope")
	assert.True(t, strings.HasPrefix(out, "{\n  "), "should be two-space indented")
}
