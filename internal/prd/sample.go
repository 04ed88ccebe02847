package prd

// Sample returns a fully populated example document for the given idea.
// Used by the CLI's offline mode and by tests that need a realistic PRD
// without calling the generation gateway.
func Sample(idea string) *Document {
	if idea == "" {
		idea = "A modern web application"
	}

	return &Document{
		ProjectSummary: ProjectSummary{
			WhatUserWants:   idea,
			TargetAudience:  "Developers, startups, and tech teams",
			TargetPlatforms: []string{"Web (Desktop)", "Web (Mobile)", "PWA"},
			ExpectedOutcomes: []string{
				"Streamlined workflow for target users",
				"Reduced time-to-value by 50%",
				"Intuitive user experience",
				"Scalable architecture",
			},
		},
		CoreFeatures: []Feature{
			{
				Title:       "User Authentication",
				Description: "Secure login and registration system with multiple auth providers",
				UserStory:   "As a user, I want to securely log in so that my data is protected",
				AcceptanceCriteria: []string{
					"Users can register with email/password",
					"OAuth support for Google and GitHub",
					"Password reset functionality",
					"Session management with JWT",
				},
				UXBehavior: "Smooth transitions between auth states, clear error messaging, loading indicators",
				Priority:   PriorityMust,
			},
			{
				Title:       "Dashboard",
				Description: "Central hub for users to view and manage their data",
				UserStory:   "As a user, I want a dashboard to quickly see my key metrics",
				AcceptanceCriteria: []string{
					"Display key metrics in cards",
					"Real-time data updates",
					"Responsive layout",
					"Customizable widgets",
				},
				UXBehavior: "Data loads progressively, skeleton states for loading, smooth animations",
				Priority:   PriorityMust,
			},
			{
				Title:       "Data Export",
				Description: "Export data in multiple formats",
				UserStory:   "As a user, I want to export my data so I can use it elsewhere",
				AcceptanceCriteria: []string{
					"Export to CSV and JSON",
					"Select date ranges",
					"Include/exclude fields",
				},
				UXBehavior: "Progress indicator during export, success notification, auto-download",
				Priority:   PriorityShould,
			},
			{
				Title:       "Notifications",
				Description: "In-app and email notifications for important events",
				UserStory:   "As a user, I want to be notified of important updates",
				AcceptanceCriteria: []string{
					"In-app notification center",
					"Email notifications (configurable)",
					"Push notifications (optional)",
				},
				UXBehavior: "Non-intrusive toast notifications, notification badge, preference settings",
				Priority:   PriorityCould,
			},
		},
		SystemRequirements: SystemRequirements{
			TechStack: []string{"React 18", "TypeScript", "Tailwind CSS", "Supabase"},
			Libraries: []string{
				"react-router-dom",
				"react-query",
				"framer-motion",
				"lucide-react",
				"date-fns",
				"zod",
			},
			Authentication: "Supabase Auth with JWT",
			Database:       "PostgreSQL (Supabase)",
			Deployment:     "Vercel / Netlify with CI/CD",
		},
		DataModels: []Entity{
			{
				Name: "User",
				Attributes: []Attribute{
					{Name: "id", Type: "uuid", Required: true, Description: "Unique identifier"},
					{Name: "email", Type: "string", Required: true, Description: "User email address"},
					{Name: "name", Type: "string", Required: true, Description: "Display name"},
					{Name: "avatar_url", Type: "string", Required: false, Description: "Profile picture URL"},
					{Name: "created_at", Type: "timestamp", Required: true, Description: "Account creation date"},
				},
				Relationships: []string{"Project", "Settings"},
			},
			{
				Name: "Project",
				Attributes: []Attribute{
					{Name: "id", Type: "uuid", Required: true, Description: "Unique identifier"},
					{Name: "user_id", Type: "uuid", Required: true, Description: "Owner reference"},
					{Name: "title", Type: "string", Required: true, Description: "Project name"},
					{Name: "description", Type: "text", Required: false, Description: "Project details"},
					{Name: "status", Type: "enum", Required: true, Description: "draft | active | archived"},
					{Name: "updated_at", Type: "timestamp", Required: true, Description: "Last modification"},
				},
				Relationships: []string{"User"},
			},
		},
		UserFlow: []FlowStep{
			{ID: "1", Title: "Landing", Description: "User arrives at landing page"},
			{ID: "2", Title: "Sign Up", Description: "User creates account or logs in"},
			{ID: "3", Title: "Onboarding", Description: "Quick setup wizard"},
			{ID: "4", Title: "Dashboard", Description: "Main workspace view"},
			{ID: "5", Title: "Create", Description: "User creates new content"},
			{ID: "6", Title: "Export", Description: "User exports their work"},
		},
		MVPScope: MVPScope{
			Must: []string{
				"User authentication (email/password)",
				"Basic dashboard with metrics",
				"CRUD operations for main entity",
				"Responsive design",
			},
			Should: []string{
				"OAuth (Google)",
				"Data export (CSV)",
				"Search functionality",
				"Dark mode",
			},
			Could: []string{
				"Email notifications",
				"Advanced filtering",
				"Collaboration features",
				"API access",
			},
			Wont: []string{
				"Mobile native app",
				"Offline mode",
				"AI features (phase 2)",
				"White-label customization",
			},
		},
	}
}
