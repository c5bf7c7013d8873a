// Package logtail reads the end of the watch-mode log file for the UI log
// pane.
//
// Read keeps a ring of the last maxLines lines while scanning, so memory is
// bounded by the requested tail rather than the file size. Pretty turns the
// zerolog JSON lines written by the logging package into a compact one-line
// form; anything else (a stray panic trace, for example) is shown as is.
package logtail
