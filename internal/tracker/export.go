// ABOUTME: Export of the current pullups state as JSON or YAML.
// ABOUTME: Bundles the reconciled today view with the raw guest records.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/pullups/internal/models"
	"github.com/harperreed/pullups/internal/view"
	"gopkg.in/yaml.v3"
)

// ExportData is the export document.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Mode       string            `json:"mode" yaml:"mode"`
	Today      view.Model        `json:"today" yaml:"today"`
	Local      LocalRecords      `json:"local" yaml:"local"`
	History    []models.TrendDay `json:"history,omitempty" yaml:"history,omitempty"`
}

// LocalRecords are the guest records as stored on this device.
type LocalRecords struct {
	Tally models.Tally `json:"tally" yaml:"tally"`
	Goal  *int64       `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// Snapshot collects the export document. Authenticated users also get
// their daily history; a history failure fails the export.
func (t *Tracker) Snapshot(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: t.now(),
		Tool:       "pullups",
		Mode:       "guest",
		Today:      t.Counter(ctx),
		Local:      LocalRecords{Tally: t.store.Tally()},
	}
	if g, ok := t.store.Goal(); ok {
		data.Local.Goal = &g
	}

	if t.IsAuthenticated() {
		data.Mode = "authenticated"
		h, err := t.History(ctx)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		data.History = h.DailyTrends
	}
	return data, nil
}

// ExportJSON renders the snapshot as indented JSON.
func (t *Tracker) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML renders the snapshot as YAML.
func (t *Tracker) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}
