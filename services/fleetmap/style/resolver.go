// Package style derives marker visuals from zoom, vehicle status and viewer role.
package style

import (
	"sort"

	"github.com/piresc/fleetmap/internal/pkg/models"
)

// Resolver is a pure lookup over a Table
type Resolver struct {
	table Table
}

// NewResolver creates a resolver. A table without steps falls back to DefaultTable.
func NewResolver(table Table) *Resolver {
	if len(table.Steps) == 0 {
		table = DefaultTable()
	}
	steps := make([]Step, len(table.Steps))
	copy(steps, table.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].MinZoom < steps[j].MinZoom })
	table.Steps = steps
	return &Resolver{table: table}
}

// Resolve picks the step for zoom and, for mechanics only, a status color.
// Zoom below the first step uses the first step.
func (r *Resolver) Resolve(zoom float64, v models.VehicleRecord, role models.Role) models.MarkerStyle {
	step := r.table.Steps[0]
	for _, s := range r.table.Steps[1:] {
		if zoom < s.MinZoom {
			break
		}
		step = s
	}

	style := models.MarkerStyle{
		Width:       step.Width,
		Height:      step.Height,
		ShowLabel:   step.ShowLabel,
		ColorFilter: r.table.Neutral,
	}
	if role == models.RoleMechanic {
		if c, ok := r.table.StatusColors[v.Status]; ok {
			style.ColorFilter = c
		}
	}
	return style
}

// Content builds what the backend draws for v at zoom
func (r *Resolver) Content(zoom float64, v models.VehicleRecord, role models.Role) models.MarkerContent {
	s := r.Resolve(zoom, v, role)
	c := models.MarkerContent{
		Icon:    r.table.Icon,
		Heading: v.Heading,
		Style:   s,
	}
	if s.ShowLabel {
		c.Label = v.Name
	}
	return c
}
