// Package ui provides the Bubble Tea dashboard for ticktock.
//
// # Screens
//
// The screen follows the persisted Mode:
//
//   - intro: greeting; enter continues to the profile form, or straight to
//     the dashboard when an age is already stored
//   - age-input: name, age and country inputs; enter validates and saves
//   - dashboard: one of five views selected by CurrentView
//
// # Dashboard Views
//
//   - Big Picture: one square per year of expected life plus the weekly
//     hour split and remaining free hours
//   - Yearly / Monthly / Weekly: progress through the current calendar unit
//   - Calendar: countdown to the active deadline and earlier deadlines
//
// # State Flow
//
// Every change goes through state.Store. The model subscribes on creation;
// observer callbacks drop the newest state into a one-slot channel that a
// tea.Cmd drains, so callbacks never block the store. Key handlers also
// refresh their local copy right after a store call, which keeps the model
// testable without a running program.
//
// A *state.PersistError from the store is shown in the footer. The change
// itself is kept for the session.
//
// # Themes
//
// Nightfox, Kanagawa and Slate are available; T cycles them and the choice
// is saved through package prefs.
package ui
