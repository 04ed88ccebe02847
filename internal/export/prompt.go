package export

import (
	"fmt"
	"strings"

	"github.com/vibespecs/vibespecs/internal/prd"
)

// promptPages is a template constant: the build prompt always scaffolds
// these four pages regardless of the document's user flow.
const promptPages = `1. Landing Page - Hero section, features overview, CTA
2. Auth Page - Login/Signup forms with validation
3. Dashboard - Main workspace with metrics cards
4. Settings - User preferences and account management`

// promptAPIRoutes is a template constant: a generic CRUD route set that
// is not derived from the document's data models.
const promptAPIRoutes = `- POST /api/auth/register - User registration
- POST /api/auth/login - User login
- GET /api/user - Get current user
- GET /api/projects - List user projects
- POST /api/projects - Create project
- PUT /api/projects/:id - Update project
- DELETE /api/projects/:id - Delete project`

// BuildPrompt renders the document as a single instruction block for a
// coding-capable IDE agent. Only must-priority features contribute; the
// page list and API route list are fixed template text.
func BuildPrompt(doc *prd.Document) string {
	must := doc.MustFeatures()

	var components []string
	for _, f := range must {
		components = append(components, fmt.Sprintf("- %s: %s", f.Title, f.Description))
	}

	var models []string
	for _, m := range doc.DataModels {
		var attrs []string
		for _, a := range m.Attributes {
			line := fmt.Sprintf("- %s: %s", a.Name, a.Type)
			if a.Required {
				line += " (required)"
			}
			attrs = append(attrs, line)
		}
		models = append(models, fmt.Sprintf("### %s\n%s", m.Name, strings.Join(attrs, "\n")))
	}

	var criteria []string
	for _, f := range must {
		for _, c := range f.AcceptanceCriteria {
			criteria = append(criteria, "- "+c)
		}
	}

	var b strings.Builder
	b.WriteString("You are Cursor. Build the following app.\n\n")
	b.WriteString("## Project Overview\n")
	b.WriteString(doc.ProjectSummary.WhatUserWants)
	b.WriteString("\n\n## Tech Stack\n")
	b.WriteString(bullets(doc.SystemRequirements.TechStack))
	b.WriteString("\n\n## Libraries\n")
	b.WriteString(bullets(doc.SystemRequirements.Libraries))
	b.WriteString("\n\n## Pages\n")
	b.WriteString(promptPages)
	b.WriteString("\n\n## Core Components\n")
	b.WriteString(strings.Join(components, "\n"))
	b.WriteString("\n\n## Database Models\n")
	b.WriteString(strings.Join(models, "\n\n"))
	b.WriteString("\n\n## Authentication\n")
	b.WriteString(doc.SystemRequirements.Authentication)
	b.WriteString("\n\n## API Routes\n")
	b.WriteString(promptAPIRoutes)
	b.WriteString("\n\n## Acceptance Criteria\n")
	b.WriteString(strings.Join(criteria, "\n"))
	b.WriteString("\n\nBuild this app step by step, starting with the project setup and authentication.")
	return b.String()
}
