// Package popover implements a draggable, interruptible card popover for
// [Ebitengine]: a panel that expands or collapses by tap or drag, whose
// motion is driven by pausable, scrubbable animations rather than fixed
// timelines.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg := popover.DefaultConfig()
//	scene, err := popover.NewScene(cfg, popover.DefaultLayout(cfg, 640, 480))
//	if err != nil {
//		log.Fatal(err)
//	}
//	popover.Run(scene, popover.RunConfig{Title: "Card", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Transitions
//
// The core is [Controller], a state machine with three modes: idle,
// animating and interactive. A tap starts a [TransitionGroup] toward the
// opposite state. A pan pauses the group (creating one if needed), scrubs it
// with the drag and, on release, lets it finish in the time the remaining
// distance warrants. Grabbing a card mid-flight reuses the running group, so
// there is never more than one transition in progress.
//
// Each animated [Property] (frame, corner radius, overlay) is its own
// [AnimationHandle] evaluated through a [gween] tween, so properties can use
// independent easing while being scrubbed in lockstep. The default curve is a
// damped spring computed with [harmonica].
//
// # Hosts
//
// The controller only sees [GestureAdapter] calls and only talks to a
// [Renderer], so it runs under any host. [Scene] is the Ebitengine host; the
// cmd/popover program also drives the same controller from a terminal with
// Bubble Tea.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
package popover
