// Package ui contains the Bubble Tea program behind the package dashboard.
// The Model type focuses on message orchestration while dedicated files own
// input modes, modals, loading and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses go to the handler of the active Mode (router.go). Normal mode
//     checks configured action hotkeys before the built-in bindings. Every
//     other mode is a modal whose state is detached from the Model while its
//     handler runs and reattached afterwards.
//   - Leaving a modal returns to Normal and re-runs the filter/sort/search
//     pipeline over the catalog.
//
// State ownership:
//   - Catalog data lives in internal/state.CatalogStore and is replaced
//     wholesale by the dispatcher when a background load completes.
//   - The Session (filters, sort key, show mode, search text, message log)
//     belongs to the caller and survives across program restarts.
//   - Modal lists, cursors and the message log are internal/ui/state types.
//   - Tag mutations run asynchronously through the internal/ui/command bus
//     and are applied when their result message arrives.
//
// Suspending:
//   - A command action that passes its rules is stored and the program quits.
//     The caller reads it with PendingCommand, runs it and starts a new
//     program with the same Session.
package ui
