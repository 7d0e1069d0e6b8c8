package style

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"gopkg.in/yaml.v3"
)

// Step is the marker size used from MinZoom upward
type Step struct {
	MinZoom   float64 `yaml:"min_zoom" validate:"gte=0"`
	Width     int     `yaml:"width" validate:"gt=0"`
	Height    int     `yaml:"height" validate:"gt=0"`
	ShowLabel bool    `yaml:"show_label"`
}

// Table is the zoom step table plus the mechanic status palette
type Table struct {
	Icon         string                          `yaml:"icon" validate:"required"`
	Neutral      string                          `yaml:"neutral"`
	Steps        []Step                          `yaml:"steps" validate:"required,min=1,dive"`
	StatusColors map[models.VehicleStatus]string `yaml:"status_colors"`
}

// DefaultTable is used when no table file is configured
func DefaultTable() Table {
	return Table{
		Icon: "vehicle",
		Steps: []Step{
			{MinZoom: 0, Width: 16, Height: 16},
			{MinZoom: 12, Width: 24, Height: 24},
			{MinZoom: 15, Width: 32, Height: 32, ShowLabel: true},
			{MinZoom: 17, Width: 40, Height: 40, ShowLabel: true},
		},
		StatusColors: map[models.VehicleStatus]string{
			models.VehicleStatusFree:             "green",
			models.VehicleStatusReserved:         "amber",
			models.VehicleStatusInUse:            "blue",
			models.VehicleStatusDeliveryReserved: "violet",
			models.VehicleStatusDelivering:       "purple",
			models.VehicleStatusService:          "orange",
			models.VehicleStatusUnavailable:      "grey",
		},
	}
}

// LoadTable reads a YAML style table. An empty path yields DefaultTable.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read style table: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("failed to parse style table: %w", err)
	}
	if err := validator.New().Struct(t); err != nil {
		return Table{}, fmt.Errorf("invalid style table: %w", err)
	}

	sort.SliceStable(t.Steps, func(i, j int) bool { return t.Steps[i].MinZoom < t.Steps[j].MinZoom })
	return t, nil
}
