package export

import (
	"fmt"
	"strings"

	"github.com/vibespecs/vibespecs/internal/prd"
)

// stepsDesignSystem is fixed prose; the design system step is not driven
// by document data.
const stepsDesignSystem = `Set up Tailwind CSS with custom colors and typography. Create a consistent design system with:
- Primary color scheme
- Typography scale
- Spacing system
- Component variants`

const stepsPolish = `- Implement loading states and skeletons
- Add error handling and toast notifications
- Ensure responsive design
- Add animations with Framer Motion`

// AgentSteps renders the document as an eight-step build script for a
// multi-step coding agent. The schema step lists every attribute of every
// entity without required markers; the feature step covers must-priority
// features with their full stories and criteria.
func AgentSteps(doc *prd.Document) string {
	var b strings.Builder
	b.WriteString("Agent: Build this app step-by-step.\n\n")

	b.WriteString("## Step 1: Setup Project\n")
	b.WriteString("Initialize a new React + TypeScript project with Vite. Install these dependencies:\n")
	b.WriteString(bullets(doc.SystemRequirements.Libraries))

	b.WriteString("\n\n## Step 2: Configure Design System\n")
	b.WriteString(stepsDesignSystem)

	b.WriteString("\n\n## Step 3: Implement Authentication\n")
	b.WriteString(fmt.Sprintf("Set up %s:\n", doc.SystemRequirements.Authentication))
	b.WriteString("- Create auth context and hooks\n")
	b.WriteString("- Build login/signup forms\n")
	b.WriteString("- Implement session management\n")
	b.WriteString("- Add protected routes")

	b.WriteString("\n\n## Step 4: Create Database Schema\n")
	b.WriteString(fmt.Sprintf("Using %s:\n", doc.SystemRequirements.Database))
	for _, m := range doc.DataModels {
		b.WriteString(fmt.Sprintf("\n### %s Table\n", m.Name))
		var attrs []string
		for _, a := range m.Attributes {
			attrs = append(attrs, fmt.Sprintf("- %s: %s", a.Name, a.Type))
		}
		b.WriteString(strings.Join(attrs, "\n"))
	}

	b.WriteString("\n\n## Step 5: Build Core Features\n")
	for i, f := range doc.MustFeatures() {
		b.WriteString(fmt.Sprintf("\n### %d. %s\n", i+1, f.Title))
		b.WriteString(f.Description)
		b.WriteString(fmt.Sprintf("\n\nUser Story: %s\n\nAcceptance Criteria:\n", f.UserStory))
		b.WriteString(bullets(f.AcceptanceCriteria))
	}

	b.WriteString("\n\n## Step 6: Implement User Flow\n")
	var flow []string
	for i, step := range doc.UserFlow {
		flow = append(flow, fmt.Sprintf("%d. %s: %s", i+1, step.Title, step.Description))
	}
	b.WriteString(strings.Join(flow, "\n"))

	b.WriteString("\n\n## Step 7: Add Polish\n")
	b.WriteString(stepsPolish)

	b.WriteString("\n\n## Step 8: Test & Deploy\n")
	b.WriteString("- Test all user flows\n")
	b.WriteString("- Fix any edge cases\n")
	b.WriteString(fmt.Sprintf("- Deploy to %s", doc.SystemRequirements.Deployment))
	return b.String()
}
