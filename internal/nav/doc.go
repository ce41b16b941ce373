// Package nav decides which screens are visible and where focus returns when
// one closes.
//
// A Manager combines the screen registry, the four tier layers, a cache of
// live instances and the visit history. Opening a full screen force-closes
// every other non-float screen; opening a second-level screen force-closes
// the other second- and third-level screens. Third-level screens stack and
// float screens are never tracked. Closing the current screen restores
// earlier screens according to their footprint flag.
//
// A Manager is not safe for concurrent use. Every call is expected on the
// goroutine that drives the frame loop.
package nav
