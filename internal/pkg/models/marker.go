package models

// MarkerStyle holds the zoom and role derived visual parameters of a marker
type MarkerStyle struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ShowLabel   bool   `json:"show_label"`
	ColorFilter string `json:"color_filter,omitempty"`
}

// MarkerContent is what the map backend draws for one placed marker
type MarkerContent struct {
	Icon    string      `json:"icon"`
	Heading float64     `json:"heading"`
	Label   string      `json:"label,omitempty"`
	Style   MarkerStyle `json:"style"`
}
