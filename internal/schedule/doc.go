// Package schedule interprets the time windows of a day's items.
//
// Every function here is pure: callers fetch a day's items from storage and
// pass them in; nothing is persisted or mutated. Windows are half-open
// intervals [start, end) in minutes since midnight, so an item ending at
// 10:00 and another starting at 10:00 do not overlap.
//
// A day holds tens of items at most, so the overlap report is a plain
// pairwise scan.
package schedule
