// Package ui provides the raygui control strip shown in the window.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState is what the strip displays.
type ControlState struct {
	Paused   bool
	Speed    int
	MaxSpeed int
	Tick     int
}

// ControlActions holds the clicks and slider changes from one frame.
type ControlActions struct {
	TogglePause bool
	Step        bool
	SpeedDelta  int
}

// ControlStrip renders pause, step and speed controls anchored to the
// bottom-right corner of the window.
type ControlStrip struct {
	screenW, screenH float32
}

// NewControlStrip creates a strip for a window of the given size.
func NewControlStrip(screenW, screenH int) *ControlStrip {
	return &ControlStrip{screenW: float32(screenW), screenH: float32(screenH)}
}

const (
	buttonW  = 70
	buttonH  = 24
	sliderW  = 100
	padding  = 8
	fontSize = 10
)

// Draw renders the strip and returns what the user did with it.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (c *ControlStrip) Draw(st ControlState) ControlActions {
	var act ControlActions

	y := c.screenH - buttonH - padding
	x := c.screenW - (buttonW*2 + sliderW + padding*4 + 40)

	label := "Pause"
	if st.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: buttonH}, label) {
		act.TogglePause = true
	}
	x += buttonW + padding

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: buttonH}, "Step") {
		act.Step = true
	}
	x += buttonW + padding + 40

	maxSpeed := st.MaxSpeed
	if maxSpeed < 1 {
		maxSpeed = 1
	}
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x, Y: y + 4, Width: sliderW, Height: buttonH - 8},
		"Speed",
		fmt.Sprintf("%dx", st.Speed),
		float32(st.Speed),
		1,
		float32(maxSpeed),
	)
	if s := int(newSpeed + 0.5); s != st.Speed {
		act.SpeedDelta = s - st.Speed
	}

	if st.Paused {
		rl.DrawText(fmt.Sprintf("PAUSED @ %d", st.Tick), int32(c.screenW)-110, int32(y)-16, fontSize, rl.Maroon)
	}

	return act
}
