// Package decision selects accessible foreground colours and attaches
// explainable metadata to every colour it hands out.
package decision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

// ErrInvalidMetadata is returned by Metadata.Validate.
var ErrInvalidMetadata = errors.New("invalid decision metadata")

// Accessibility holds the contrast measurements behind a decision.
type Accessibility struct {
	WCAGRatio    float64 `json:"wcagRatio" yaml:"wcagRatio"`
	APCAContrast float64 `json:"apcaContrast" yaml:"apcaContrast"`
	PassesAA     bool    `json:"passesAA" yaml:"passesAA"`
	PassesAAA    bool    `json:"passesAAA" yaml:"passesAAA"`
}

// Metadata explains a colour decision.
//
// Accessibility is nil when no contrast check was part of the decision; that is
// the only optional field.
type Metadata struct {
	QualityScore     float64        `json:"qualityScore" yaml:"qualityScore"`
	Confidence       float64        `json:"confidence" yaml:"confidence"`
	Reason           string         `json:"reason" yaml:"reason"`
	SourceDecisionID string         `json:"sourceDecisionId" yaml:"sourceDecisionId"`
	Accessibility    *Accessibility `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
}

// HasAccessibility reports whether contrast measurements are attached.
func (m Metadata) HasAccessibility() bool {
	return m.Accessibility != nil
}

// Validate checks score ranges, the reason and the decision id.
func (m Metadata) Validate() error {
	if m.QualityScore < 0 || m.QualityScore > 1 {
		return fmt.Errorf("%w: quality score %v outside [0, 1]", ErrInvalidMetadata, m.QualityScore)
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0, 1]", ErrInvalidMetadata, m.Confidence)
	}
	if m.Reason == "" {
		return fmt.Errorf("%w: empty reason", ErrInvalidMetadata)
	}
	if m.SourceDecisionID == "" {
		return fmt.Errorf("%w: missing source decision id", ErrInvalidMetadata)
	}
	return nil
}

// Category is the semantic role of a token.
type Category string

const (
	CategoryBackground Category = "background"
	CategoryForeground Category = "foreground"
	CategoryOutline    Category = "outline"
)

// Token is a named design token with a CSS-ready value.
type Token struct {
	Name     string   `json:"name" yaml:"name"`
	Value    string   `json:"value" yaml:"value"`
	Category Category `json:"category" yaml:"category"`
}

// EnrichedToken pairs a token with the decision that produced it.
// Tokens are shared between callers and must be treated as read-only.
type EnrichedToken struct {
	Token    `yaml:",inline"`
	Colour   colour.Colour `json:"-" yaml:"-"`
	Metadata Metadata      `json:"metadata" yaml:"metadata"`
}

// NewEnrichedToken builds a token whose value is the colour's CSS form.
func NewEnrichedToken(name string, category Category, c colour.Colour, meta Metadata) *EnrichedToken {
	return &EnrichedToken{
		Token: Token{
			Name:     name,
			Value:    c.CSS(),
			Category: category,
		},
		Colour:   c,
		Metadata: meta,
	}
}

// NewDecisionID returns a fresh identifier for a decision computation.
func NewDecisionID() string {
	return uuid.New().String()
}
