package ui

import (
	"fmt"

	"schelling/internal/core"
	"schelling/internal/sims/schelling"
)

// HUDLines lists the text shown in the HUD panel: the parameter snapshot
// followed by the playback position and the key bindings.
func HUDLines(params core.ParameterSnapshot, frame, total int, paused bool) []string {
	lines := params.Lines()
	status := "playing"
	if paused {
		status = "paused"
	}
	if total > 0 && frame+1 >= total {
		status = "finished"
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Frame %d/%d (%s)", frame+1, total, status),
		"",
		"space pause  n step",
		"r restart  1 overlay",
		"q quit",
	)
	return lines
}

// DissatisfiedMask marks occupied cells whose satisfaction falls below
// threshold. It returns nil for non-square sizes or mismatched frames.
func DissatisfiedMask(cells []uint8, size core.Size, threshold float64) []bool {
	if size.W != size.H || len(cells) != size.Cells() {
		return nil
	}
	field := schelling.SatisfactionField(cells, size.W)
	mask := make([]bool, len(field))
	for i, s := range field {
		mask[i] = s >= 0 && s < threshold
	}
	return mask
}
