// Package cli provides the terminal user interface for gameshelf.
//
// The package uses [Bubbletea] for the interactive screen and [Lipgloss] for
// styling, following the Model-View-Update architecture.
//
// # Components
//
//   - GamesModel: the collection screen. A table of video games and, on
//     writable deployments, a four-field form for adding and editing.
//
// Network operations never run inside Update. Update prepares the request
// against the collection state and returns a command that executes it; the
// outcome comes back as a message and is applied to the state.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
