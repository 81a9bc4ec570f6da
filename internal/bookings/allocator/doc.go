// Package allocator holds the pure parts of table allocation: clock and date
// arithmetic, operating-hours matching, overlap detection and smallest-fits-first
// table selection. Nothing here touches storage, so every rule is testable on
// plain values.
package allocator
