// Package ui hosts the navigation manager inside a Bubble Tea program. The
// Model owns message orchestration; helpers own key handling, filter input and
// rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by one
//     focused function.
//   - Key presses that open, close or run screens become command.Request
//     values. The command bus applies them to the nav.Manager immediately and
//     returns a tea.Cmd that reports the outcome as a command.Result.
//   - frameMsg is the frame clock. Each frame advances the scheduler, so
//     panel transitions complete, and then calls Manager.Tick.
//
// Panels:
//   - PanelFactory is the screen.Creator handed to the manager. A Panel models
//     show and hide transitions on the shared scheduler and reports its phase,
//     stacking order and frame count to the view.
//
// State ownership:
//   - Palette state (filter, cursor, viewport) lives in internal/ui/state.
//   - Navigation state lives in the manager; the view only reads it.
package ui
