package model

import "time"

// Document is the renderer-agnostic report structure the materializer
// produces. Renderers consume it and emit format-specific bytes; they never
// reach back into the store.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

// SectionKind discriminates the two section shapes
type SectionKind int

const (
	// SectionTable is a flat table: header row plus data rows, all cells
	// already rendered to strings
	SectionTable SectionKind = iota

	// SectionDistribution is a labeled count distribution suitable for
	// chart rendering
	SectionDistribution
)

// Section is one named part of a report document
type Section struct {
	Name   string
	Kind   SectionKind
	Header []string
	Rows   [][]string
	Labels []string
	Counts []int
}

// NewTableSection builds a table section
func NewTableSection(name string, header []string, rows [][]string) Section {
	return Section{
		Name:   name,
		Kind:   SectionTable,
		Header: header,
		Rows:   rows,
	}
}

// NewDistributionSection builds a labeled count distribution section.
// Labels and counts are parallel and order is preserved for rendering.
func NewDistributionSection(name string, labels []string, counts []int) Section {
	return Section{
		Name:   name,
		Kind:   SectionDistribution,
		Labels: labels,
		Counts: counts,
	}
}
