package debug

import "github.com/Faultbox/midgard-debugbox/internal/engine/gfx"

// saveState captures the pipeline state Draw mutates.
// Returns a function that restores it.
func saveState(g gfx.Backend) func() {
	prevProgram := g.Integer(gfx.CurrentProgram)
	prevVAO := g.Integer(gfx.VertexArrayBinding)
	prevLineWidth := g.Float(gfx.LineWidth)

	return func() {
		g.BindVertexArray(uint32(prevVAO))
		g.LineWidth(prevLineWidth)
		g.UseProgram(uint32(prevProgram))
	}
}
