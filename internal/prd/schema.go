package prd

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority represents a MoSCoW priority level for a feature
type Priority string

const (
	PriorityMust   Priority = "must"
	PriorityShould Priority = "should"
	PriorityCould  Priority = "could"
	PriorityWont   Priority = "wont"
)

// ProjectSummary describes the app concept, its audience and goals
type ProjectSummary struct {
	WhatUserWants    string   `json:"whatUserWants"`
	TargetAudience   string   `json:"targetAudience"`
	TargetPlatforms  []string `json:"targetPlatforms"`
	ExpectedOutcomes []string `json:"expectedOutcomes"`
}

// Feature is a single core feature with its story and testable criteria
type Feature struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	UserStory          string   `json:"userStory"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	UXBehavior         string   `json:"uxBehavior"`
	Priority           Priority `json:"priority"`
}

// SystemRequirements captures the recommended technical foundation
type SystemRequirements struct {
	TechStack      []string `json:"techStack"`
	Libraries      []string `json:"libraries"`
	Authentication string   `json:"authentication"`
	Database       string   `json:"database"`
	Deployment     string   `json:"deployment"`
}

// Attribute is a single field of a data model entity
type Attribute struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Entity is a data model with its attributes and name-based relationships.
// Relationship entries reference other entities by name only; nothing
// enforces that the referenced entity exists.
type Entity struct {
	Name          string      `json:"name"`
	Attributes    []Attribute `json:"attributes"`
	Relationships []string    `json:"relationships"`
}

// FlowStep is one step of the user flow. Ordering is the slice position,
// not the id; ids are not required to be unique.
type FlowStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MVPScope holds the four MoSCoW buckets. Bucket membership is authored
// independently of Feature.Priority; the two views are not reconciled.
type MVPScope struct {
	Must   []string `json:"must"`
	Should []string `json:"should"`
	Could  []string `json:"could"`
	Wont   []string `json:"wont"`
}

// Document is the root PRD value produced by generation and consumed by
// every projection and export surface. Immutable once produced; slice
// fields preserve generation order.
type Document struct {
	ProjectSummary     ProjectSummary     `json:"projectSummary"`
	CoreFeatures       []Feature          `json:"coreFeatures"`
	SystemRequirements SystemRequirements `json:"systemRequirements"`
	DataModels         []Entity           `json:"dataModels"`
	UserFlow           []FlowStep         `json:"userFlow"`
	MVPScope           MVPScope           `json:"mvpScope"`
}

// Decode parses raw JSON into a Document. The decode is deliberately
// loose: the generation gateway's schema enforcement is advisory only, so
// missing fields are tolerated and nil slices are normalized to empty.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode PRD: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Normalize replaces nil slices with empty ones so consumers can treat
// the document as total without nil checks.
func (d *Document) Normalize() {
	if d.ProjectSummary.TargetPlatforms == nil {
		d.ProjectSummary.TargetPlatforms = []string{}
	}
	if d.ProjectSummary.ExpectedOutcomes == nil {
		d.ProjectSummary.ExpectedOutcomes = []string{}
	}
	if d.CoreFeatures == nil {
		d.CoreFeatures = []Feature{}
	}
	for i := range d.CoreFeatures {
		if d.CoreFeatures[i].AcceptanceCriteria == nil {
			d.CoreFeatures[i].AcceptanceCriteria = []string{}
		}
	}
	if d.SystemRequirements.TechStack == nil {
		d.SystemRequirements.TechStack = []string{}
	}
	if d.SystemRequirements.Libraries == nil {
		d.SystemRequirements.Libraries = []string{}
	}
	if d.DataModels == nil {
		d.DataModels = []Entity{}
	}
	for i := range d.DataModels {
		if d.DataModels[i].Attributes == nil {
			d.DataModels[i].Attributes = []Attribute{}
		}
		if d.DataModels[i].Relationships == nil {
			d.DataModels[i].Relationships = []string{}
		}
	}
	if d.UserFlow == nil {
		d.UserFlow = []FlowStep{}
	}
	if d.MVPScope.Must == nil {
		d.MVPScope.Must = []string{}
	}
	if d.MVPScope.Should == nil {
		d.MVPScope.Should = []string{}
	}
	if d.MVPScope.Could == nil {
		d.MVPScope.Could = []string{}
	}
	if d.MVPScope.Wont == nil {
		d.MVPScope.Wont = []string{}
	}
}

// MustFeatures returns the features whose priority is "must", in
// generation order.
func (d *Document) MustFeatures() []Feature {
	var out []Feature
	for _, f := range d.CoreFeatures {
		if f.Priority == PriorityMust {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a deep copy of the document via a JSON round trip. The
// persistence layer stores copies so the caller's value stays authoritative.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to clone PRD: %w", err)
	}
	return Decode(data)
}

// StripCodeFences removes Markdown code fence wrappers (```json ... ```
// or bare ```) that models sometimes add around JSON output.
func StripCodeFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}
