package driver

import (
	"encoding/json"
	"fmt"

	"magen/internal/diag"
	"magen/internal/observ"
	"magen/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds the OBS6001 summary: an info entry whose note
// is the phase breakdown as JSON. It is kept even when the bag is full.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms, %s", payload.Kind, payload.TotalMS, payload.Path)
	nowhere := source.Span{File: noFile}
	bag.Append(diag.New(diag.SevInfo, diag.ObsTimings, nowhere, msg).WithNote(nowhere, string(data)))
}
