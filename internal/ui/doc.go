// Package ui contains the Bubble Tea program for the customer ticket screen.
// The Model only orchestrates: it decides which fetch to issue for a key
// press and applies results, while the domain rules live in internal/booking.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, routed through a
//     typed handler registry so each tea.Msg is handled by a focused function.
//   - Key handlers (navigation.go, input.go) start a refresh on the owning
//     view.View, capture the generation it returns and submit the blocking
//     call to the task.Runner. Submission never blocks Update.
//   - Workers post completions to the dispatcher. waitForDispatch pulls them
//     one at a time and returns them to Update as dispatchMsg values, so
//     completions run FIFO on the same goroutine as input handling.
//
// State ownership:
//   - Each region (movie list, booking history, each row's room) is a
//     view.View. A completion applies only while its generation is current,
//     so the latest refresh wins regardless of completion order.
//   - Every completion is wrapped in lifecycle.Gate.Guard; once the window
//     closes nothing touches the model again.
//   - List cursor, filter and viewport state lives in internal/ui/state.List.
//
// Harness runs the same code without the pump so tests control exactly when
// posted callbacks are applied.
package ui
