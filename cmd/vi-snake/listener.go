package main

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/engine"
)

// gameListener turns scheduler notifications into sounds and render wake-ups
type gameListener struct {
	screen tcell.Screen
	sound  *audio.SoundManager
}

func (l *gameListener) OnStep(res engine.StepResult) {
	switch {
	case res.AteBonus:
		l.sound.PlayBonus()
	case res.AteFood:
		l.sound.PlayFood()
	case res.BonusAppeared:
		l.sound.PlayBonusAppear()
	}
	l.wake()
}

func (l *gameListener) OnGameOver(score int, outcome engine.Outcome) {
	log.Printf("game: over with %d points (%s)", score, outcome)
	if outcome == engine.OutcomeBoardCleared {
		l.sound.PlayClear()
	} else {
		l.sound.PlayCollision()
	}
	l.wake()
}

// wake redraws without waiting for the frame ticker; a full queue is fine, the ticker catches up
func (l *gameListener) wake() {
	_ = l.screen.PostEvent(tcell.NewEventInterrupt(nil))
}
