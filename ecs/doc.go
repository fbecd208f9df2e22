// Package ecs provides ECS adapters for popover's transition events.
//
// The primary adapter is [NewDonburiSink], which bridges popover transition
// events (started, interrupted, released, reversed, completed) into a
// [Donburi] world as typed events. Subscribe to [TransitionEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	cfg := popover.DefaultConfig()
//	cfg.Sink = ecs.NewDonburiSink(world)
//	scene, err := popover.NewScene(cfg, popover.DefaultLayout(cfg, 640, 480))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
