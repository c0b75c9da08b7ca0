package schelling

import "schelling/internal/core"

// Parameters describes the board configuration for HUDs and reports.
func (b *Board) Parameters() core.ParameterSnapshot {
	return b.cfg.Parameters()
}

// Parameters describes the configuration grouped for presentation.
func (c Config) Parameters() core.ParameterSnapshot {
	groupA, groupB := c.Population()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				core.IntParam("size", "Size", c.Size),
				core.Int64Param("seed", "Seed", c.Seed),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				core.IntParam("e", "Empty cells", c.Empty),
				core.FloatParam("q", "Group A share", c.Share),
				core.IntParam("group_a", "Group A", groupA),
				core.IntParam("group_b", "Group B", groupB),
			},
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				core.FloatParam("p", "Threshold", c.Threshold),
				core.IntParam("no_change_limit", "No-change limit", c.NoChangeLimit),
				core.BoolParam("record_history", "Record history", c.RecordHistory),
			},
		},
	}}
}
