// Package reminder decides when assignment reminders are due and delivers
// them.
//
// A Clock calls Scanner.Scan on a fixed period. The scanner walks the
// assignment list, fires every pending reminder whose instant lies within
// the due window of now, marks it notified and persists the list once. A
// reminder that is already notified, has no reminder time, or fell outside
// the window is never fired, so there is no catch-up for reminders missed
// while the process was down.
package reminder
