package ideawall

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebug prints frame timing and scene counters in the corner.
// Enabled via Config.ShowDebug.
func (e *Engine) drawDebug(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nTPS: %.1f\ntiles: %d  scale: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), len(e.nodes), e.cam.Scale))
}
