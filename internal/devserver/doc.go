// Package devserver serves a notes directory over HTTP with live reload.
//
// A Server wires three goroutines together by channels: the net/http
// server, a Watcher reading fsnotify events, and a Hub that owns the set of
// connected viewers. The Watcher rebuilds changed markdown through a Builder
// and publishes "reload" to the Hub when pages, styles or scripts change.
// Each viewer holds an EventSource on /events and reloads when a message
// arrives.
package devserver
