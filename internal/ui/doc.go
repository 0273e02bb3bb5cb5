// package ui implements the interactive terminal front end with
// charmbracelet's Bubble Tea framework.
//
// # Architecture
//
// [Model] is the single root model. It wraps a [session.Session] that
// owns every piece of page state (active mode, playlist directory,
// result set, modals) and mutates it only through the session's named
// transition methods; the model itself keeps just widget state such as
// text inputs, lists, and focus.
//
// # Concurrency
//
// Network calls run as [tea.Cmd] commands; their completion messages
// carry the generation or invocation token stamped when the request was
// issued. The session compares that token against its current one and
// drops anything stale, so when requests overlap the last one issued
// always wins, regardless of arrival order. The same token guards the
// add workflow's delayed auto-close tick.
package ui
