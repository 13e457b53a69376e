// Package dashboard holds the mutable in-memory form of a Grafana dashboard
// definition. A Document is obtained from Parse, edited through SetTitle,
// AddLink and AddPanel, and turned back into JSON text with Serialize.
//
// Parsing is key-preserving: fields the template carries that this package
// knows nothing about survive a parse/serialize round trip untouched.
package dashboard

import (
	"encoding/json"
	"fmt"
)

// PanelKind selects the visualization type of an added panel.
type PanelKind string

const (
	PanelKindGraph   PanelKind = "graph"
	PanelKindStat    PanelKind = "stat"
	PanelKindTable   PanelKind = "table"
	PanelKindHeatmap PanelKind = "heatmap"
)

const (
	panelWidth  = 12
	panelHeight = 8
)

// Document is a parsed dashboard definition.
type Document struct {
	fields map[string]any
}

// Parse decodes dashboard JSON text into a Document.
func Parse(text string) (*Document, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard JSON: %w", err)
	}
	return &Document{fields: fields}, nil
}

// SetTitle replaces the dashboard title.
func (d *Document) SetTitle(title string) {
	d.fields["title"] = title
}

// Title returns the current dashboard title, or "" if unset.
func (d *Document) Title() string {
	title, _ := d.fields["title"].(string)
	return title
}

// AddLink appends a navigation link to the dashboard.
func (d *Document) AddLink(name, url string) {
	links, _ := d.fields["links"].([]any)
	links = append(links, map[string]any{
		"title":       name,
		"url":         url,
		"type":        "link",
		"targetBlank": true,
	})
	d.fields["links"] = links
}

// AddPanel appends a panel bound to a single query expression. The panel is
// assigned the next free panel id and placed full-width below every existing
// panel. yAxisLabel may be empty, in which case no axis config is emitted.
func (d *Document) AddPanel(kind PanelKind, title, query, yAxisLabel string) {
	panels, _ := d.fields["panels"].([]any)

	panel := map[string]any{
		"id":         nextPanelID(panels),
		"type":       string(kind),
		"title":      title,
		"datasource": nil,
		"gridPos": map[string]any{
			"x": 0,
			"y": nextPanelRow(panels),
			"w": panelWidth,
			"h": panelHeight,
		},
		"targets": []any{
			map[string]any{
				"expr":   query,
				"refId":  "A",
				"format": "time_series",
			},
		},
	}
	if yAxisLabel != "" {
		panel["yaxes"] = []any{
			map[string]any{"label": yAxisLabel, "show": true, "format": "short"},
			map[string]any{"show": true, "format": "short"},
		}
	}

	d.fields["panels"] = append(panels, panel)
}

// Serialize encodes the document back into JSON text.
func (d *Document) Serialize() (string, error) {
	out, err := json.MarshalIndent(d.fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize dashboard: %w", err)
	}
	return string(out), nil
}

func nextPanelID(panels []any) int {
	max := 0
	for _, p := range panels {
		panel, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := asInt(panel["id"]); ok && id > max {
			max = id
		}
	}
	return max + 1
}

func nextPanelRow(panels []any) int {
	row := 0
	for _, p := range panels {
		panel, ok := p.(map[string]any)
		if !ok {
			continue
		}
		grid, ok := panel["gridPos"].(map[string]any)
		if !ok {
			continue
		}
		y, _ := asInt(grid["y"])
		h, _ := asInt(grid["h"])
		if bottom := y + h; bottom > row {
			row = bottom
		}
	}
	return row
}

// asInt accepts both the float64 form produced by json.Unmarshal and the int
// form written by AddPanel itself.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
