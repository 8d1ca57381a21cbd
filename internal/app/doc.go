// Package app hosts the cooperative event loop of the modctl TUI.
//
// One single-threaded loop owns all mutable state: the navigation
// context, the command-line engine, the output history, the theme stack
// and the screen buffers. It blocks on the next event from the terminal
// driver, handles it to completion, renders, and repeats. The driver is
// the only concurrent component and communicates exclusively through
// self-contained protocol lines, so nothing here is ever accessed from
// two goroutines.
package app
