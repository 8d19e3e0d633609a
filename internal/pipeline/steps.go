package pipeline

import (
	"context"

	"passat/internal/classify"
	"passat/internal/model"
)

// MaskStep fills in the character-class shape pattern.
type MaskStep struct {
	masker *classify.Masker
}

// NewMaskStep creates a MaskStep over the given masker.
func NewMaskStep(masker *classify.Masker) *MaskStep {
	return &MaskStep{masker: masker}
}

// Name returns the step name.
func (s *MaskStep) Name() string { return "mask" }

// Do computes the shape pattern.
func (s *MaskStep) Do(_ context.Context, c *model.Classification) error {
	c.Shape = s.masker.Shape(c.Password)
	return nil
}

// TaxonomyStep fills in the matched taxonomy rule names.
type TaxonomyStep struct {
	taxonomy *classify.Taxonomy
}

// NewTaxonomyStep creates a TaxonomyStep over the given rule table.
func NewTaxonomyStep(taxonomy *classify.Taxonomy) *TaxonomyStep {
	return &TaxonomyStep{taxonomy: taxonomy}
}

// Name returns the step name.
func (s *TaxonomyStep) Name() string { return "taxonomy" }

// Do evaluates every taxonomy rule against the password.
func (s *TaxonomyStep) Do(_ context.Context, c *model.Classification) error {
	c.TaxonomyLabels = s.taxonomy.Match(c.Password)
	return nil
}

// CategoryStep fills in the fuzzy-resolved category label set and base-word
// matches. Omit this step entirely to run in no-categories mode.
type CategoryStep struct {
	resolver *classify.Resolver
}

// NewCategoryStep creates a CategoryStep over the given resolver.
func NewCategoryStep(resolver *classify.Resolver) *CategoryStep {
	return &CategoryStep{resolver: resolver}
}

// Name returns the step name.
func (s *CategoryStep) Name() string { return "categorize" }

// Do resolves the password against the category dictionary.
func (s *CategoryStep) Do(_ context.Context, c *model.Classification) error {
	c.Categories, c.BaseWords = s.resolver.Resolve(c.Password)
	return nil
}
