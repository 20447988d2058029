// Package schematest provides a shared questionnaire fixture for tests.
package schematest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
)

// QuestionnaireYAML is a small product-requirements questionnaire. At the
// base tier exactly four questions apply; follow-up questions carry an
// empty tier list so only triggers can surface them.
const QuestionnaireYAML = `version: "2.1.0"
stages: [basics, summary, technical, compliance]
complexity_levels: [base, minimal, enterprise]
questions:
  - id: doc.version
    prompt: Which document version is this?
    stage: basics
    tags: [meta]
  - id: project.name
    prompt: What is the project called?
    stage: basics
    tags: [meta]
  - id: summary.problem
    prompt: What problem does the project solve?
    stage: summary
    tags: [summary]
  - id: summary.solution
    prompt: What is the proposed solution?
    stage: summary
    tags: [summary]
  - id: deployment.model
    prompt: How will the system be deployed?
    stage: technical
    type: select
    tags: [technical, ops]
    options: [saas, on-prem, hybrid]
    triggers:
      on-prem: [deployment.hardware]
      hybrid: [deployment.hardware, deployment.sync]
  - id: deployment.hardware
    prompt: What hardware will host the system?
    stage: technical
    tags: [technical, ops]
  - id: deployment.sync
    prompt: How is data synchronized between cloud and on-prem?
    stage: technical
    tags: [technical]
  - id: team.size
    prompt: How many people will operate the system?
    stage: technical
    tags: [ops]
    skip_if: answer("deployment.model") == "saas"
  - id: privacy.pii
    prompt: Does the system store personal data?
    stage: compliance
    type: boolean
    tags: [compliance, security]
    triggers:
      "true": [privacy.controls, privacy.retention]
  - id: privacy.controls
    prompt: Which controls protect personal data?
    stage: compliance
    tags: [compliance]
  - id: privacy.retention
    prompt: How long is personal data retained?
    stage: compliance
    tags: [compliance]
  - id: security.audit
    prompt: Is an external security audit required?
    stage: compliance
    type: boolean
    tags: [security]
    triggers:
      "true": [privacy.controls, security.auditor]
  - id: security.auditor
    prompt: Who performs the audit?
    stage: compliance
    tags: [security]
  - id: integrations.list
    prompt: Which integrations are needed?
    stage: technical
    type: multiselect
    tags: [technical]
    options: [slack, github, jira]
    triggers:
      github: [integrations.github_scopes]
      jira: [integrations.jira_project]
  - id: integrations.github_scopes
    prompt: Which GitHub scopes are required?
    stage: technical
    tags: [technical]
  - id: integrations.jira_project
    prompt: Which Jira project receives issues?
    stage: technical
    tags: [technical]
`

// MetadataYAML assigns tiers to the fixture's questions.
const MetadataYAML = `fields:
  doc.version:
    tiers: [base, minimal, enterprise]
  project.name:
    tiers: [simple, startup, enterprise]
  summary.problem:
    tiers: [base, minimal, enterprise]
  summary.solution:
    tiers: [base, minimal, enterprise]
  deployment.model:
    tiers: [minimal, enterprise]
  team.size:
    tiers: [minimal, enterprise]
  privacy.pii:
    tiers: [minimal, enterprise]
  security.audit:
    tiers: [enterprise]
  integrations.list:
    tiers: [mcp]
  deployment.hardware:
    tiers: []
  deployment.sync:
    tiers: []
  privacy.controls:
    tiers: []
  privacy.retention:
    tiers: []
  security.auditor:
    tiers: []
  integrations.github_scopes:
    tiers: []
  integrations.jira_project:
    tiers: []
`

// BaseRequired lists the ids required at the base tier, in order.
var BaseRequired = []string{"doc.version", "project.name", "summary.problem", "summary.solution"}

// Snapshot parses the fixture. It panics on error because the fixture is
// a compile-time constant.
func Snapshot() *schema.Snapshot {
	q, err := schema.ParseQuestionnaire([]byte(QuestionnaireYAML), schema.FormatYAML)
	if err != nil {
		panic(err)
	}
	m, err := schema.ParseFieldMetadata([]byte(MetadataYAML), schema.FormatYAML)
	if err != nil {
		panic(err)
	}
	return schema.NewSnapshot(q, m)
}

// WriteDir writes the fixture into a fresh temp directory and returns it.
func WriteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write(t, filepath.Join(dir, schema.DefaultQuestionnaireFile), QuestionnaireYAML)
	write(t, filepath.Join(dir, schema.DefaultMetadataFile), MetadataYAML)
	return dir
}

// IDs extracts question ids in order.
func IDs(questions []schema.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
