// Package stringbar is the core of the stringbar application, a small
// status bar for window managers that draw the X root window name as a
// status line, such as dwm.
//
// Mechanism of Operation
//
// The bar runs a single cooperative loop. Each tick it samples every
// configured module (CPU, memory, swap, disk, process count, local
// time), renders each section around its decoration, joins the sections
// with the configured separator, and hands the composed line to a sink,
// which by default invokes xsetroot -name.
//
// Configuration Reloads
//
// The configuration file is watched with inotify; when it changes, the
// loop re-reads it at the next tick boundary and atomically swaps in a
// new snapshot. A file that fails to parse is rejected and the previous
// snapshot stays in effect, so a half-saved edit never blanks the bar.
// If the watcher cannot be started at all, the loop degrades to
// comparing modification times once per tick.
//
// Journal
//
// Noteworthy occurrences (config loads and rejections, provider and
// sink failures) are written as typed events to a journal. The journal
// file doubles as a lock: a second stringbar instance fails to acquire
// the flock and exits quietly.
package stringbar
