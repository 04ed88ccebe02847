package export

import (
	"fmt"
	"strings"

	"github.com/vibespecs/vibespecs/internal/prd"
)

// Markdown renders the full document as a human-readable report. Unlike
// the prompt and step projections, nothing is filtered by priority: every
// feature appears with its priority tag, and all four MoSCoW buckets are
// rendered even when empty.
func Markdown(doc *prd.Document) string {
	var b strings.Builder
	b.WriteString("# Product Requirements Document\n\n")

	b.WriteString("## 1. Project Summary\n\n")
	b.WriteString(fmt.Sprintf("**What the user wants:** %s\n\n", doc.ProjectSummary.WhatUserWants))
	b.WriteString(fmt.Sprintf("**Target Audience:** %s\n\n", doc.ProjectSummary.TargetAudience))
	b.WriteString("**Target Platforms:**\n")
	b.WriteString(bullets(doc.ProjectSummary.TargetPlatforms))
	b.WriteString("\n\n**Expected Outcomes:**\n")
	b.WriteString(bullets(doc.ProjectSummary.ExpectedOutcomes))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 2. Core Features\n\n")
	var features []string
	for _, f := range doc.CoreFeatures {
		var fb strings.Builder
		fb.WriteString(fmt.Sprintf("### %s [%s]\n\n", f.Title, strings.ToUpper(string(f.Priority))))
		fb.WriteString(f.Description)
		fb.WriteString(fmt.Sprintf("\n\n**User Story:** %s\n\n", f.UserStory))
		fb.WriteString("**Acceptance Criteria:**\n")
		for _, c := range f.AcceptanceCriteria {
			fb.WriteString(fmt.Sprintf("- [ ] %s\n", c))
		}
		fb.WriteString(fmt.Sprintf("\n**UX Behavior:** %s\n", f.UXBehavior))
		features = append(features, fb.String())
	}
	b.WriteString(strings.Join(features, "\n---\n\n"))
	b.WriteString("\n---\n\n")

	b.WriteString("## 3. System Requirements\n\n")
	b.WriteString("**Tech Stack:**\n")
	b.WriteString(bullets(doc.SystemRequirements.TechStack))
	b.WriteString("\n\n**Libraries:**\n")
	b.WriteString(bullets(doc.SystemRequirements.Libraries))
	b.WriteString(fmt.Sprintf("\n\n**Authentication:** %s\n\n", doc.SystemRequirements.Authentication))
	b.WriteString(fmt.Sprintf("**Database:** %s\n\n", doc.SystemRequirements.Database))
	b.WriteString(fmt.Sprintf("**Deployment:** %s\n\n", doc.SystemRequirements.Deployment))
	b.WriteString("---\n\n")

	b.WriteString("## 4. Data Models\n\n")
	for _, m := range doc.DataModels {
		b.WriteString(fmt.Sprintf("### %s\n\n", m.Name))
		b.WriteString("| Attribute | Type | Required | Description |\n")
		b.WriteString("|-----------|------|----------|-------------|\n")
		for _, a := range m.Attributes {
			required := "No"
			if a.Required {
				required = "Yes"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", a.Name, a.Type, required, a.Description))
		}
		relationships := strings.Join(m.Relationships, ", ")
		if relationships == "" {
			relationships = "None"
		}
		b.WriteString(fmt.Sprintf("\n**Relationships:** %s\n\n", relationships))
	}
	b.WriteString("---\n\n")

	b.WriteString("## 5. User Flow\n\n")
	var flow []string
	for i, s := range doc.UserFlow {
		flow = append(flow, fmt.Sprintf("%d. **%s** - %s", i+1, s.Title, s.Description))
	}
	b.WriteString(strings.Join(flow, "\n"))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 6. MVP Scope (MoSCoW)\n\n")
	b.WriteString("### Must Have\n")
	b.WriteString(bullets(doc.MVPScope.Must))
	b.WriteString("\n\n### Should Have\n")
	b.WriteString(bullets(doc.MVPScope.Should))
	b.WriteString("\n\n### Could Have\n")
	b.WriteString(bullets(doc.MVPScope.Could))
	b.WriteString("\n\n### Won't Have (This Release)\n")
	b.WriteString(bullets(doc.MVPScope.Wont))
	b.WriteString("\n")
	return b.String()
}
