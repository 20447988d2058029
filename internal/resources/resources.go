// Package resources implements MCP resource handlers for the interview.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (interview://...) following MCP conventions.
package resources

import (
	"context"

	"github.com/HendryAvila/hoofy-interview/internal/flow"
	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	SummaryURI       = "interview://schema/summary"
	QuestionnaireURI = "interview://schema/questionnaire"
)

// Handler manages interview resource endpoints.
type Handler struct {
	engine *flow.Engine
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(engine *flow.Engine) *Handler {
	return &Handler{engine: engine}
}

// TierSummary describes what one canonical tier asks for.
type TierSummary struct {
	Tier           tier.Tier `json:"tier"`
	QuestionCount  int       `json:"question_count"`
	RequiredFields []string  `json:"required_fields"`
}

// Summary is the body of the schema summary resource.
type Summary struct {
	Version        string        `json:"version"`
	Stages         []string      `json:"stages"`
	QuestionCount  int           `json:"question_count"`
	MetadataFields int           `json:"metadata_fields"`
	Tiers          []TierSummary `json:"tiers"`
	Warnings       []string      `json:"warnings"`
}

// SummaryResource returns the MCP resource definition for the schema summary.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		SummaryURI,
		"Interview Schema Summary",
		mcp.WithResourceDescription("Questionnaire version, stages, and the required fields of each tier"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSummary returns the schema summary as JSON.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := h.engine.Snapshot(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, Summarize(snap))
}

// QuestionnaireResource returns the MCP resource definition for the raw questionnaire.
func (h *Handler) QuestionnaireResource() mcp.Resource {
	return mcp.NewResource(
		QuestionnaireURI,
		"Interview Questionnaire",
		mcp.WithResourceDescription("The full questionnaire currently served, as JSON"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleQuestionnaire returns the questionnaire as JSON.
func (h *Handler) HandleQuestionnaire(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := h.engine.Snapshot(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, snap.Questionnaire)
}

// Summarize builds the summary for snap.
func Summarize(snap *schema.Snapshot) Summary {
	s := Summary{
		Version:        snap.Questionnaire.Version,
		Stages:         append([]string{}, snap.Questionnaire.Stages...),
		QuestionCount:  len(snap.Questionnaire.Questions),
		MetadataFields: len(snap.Metadata),
		Warnings:       schema.Lint(snap),
	}
	if s.Warnings == nil {
		s.Warnings = []string{}
	}
	for _, t := range tier.Canonical() {
		required := flow.RequiredFields(snap, string(t))
		if required == nil {
			required = []string{}
		}
		s.Tiers = append(s.Tiers, TierSummary{
			Tier:           t,
			QuestionCount:  len(required),
			RequiredFields: required,
		})
	}
	return s
}
