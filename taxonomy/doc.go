// Package taxonomy provides the TOOI value lists (waardelijsten) used by
// DIWOO metadata: the 17 Woo information categories from Artikel 3.3 Wet
// open overheid, document types, handling types, languages, document
// relations, and removal reasons.
//
// Every entry carries a stable code (e.g. "c_5ba23c01"), a Dutch label, and
// a TOOI URI derived deterministically from the code. Codes and URI patterns
// are externally stable identifiers: changing either is a breaking
// compatibility change.
//
// Lookups never fail hard. Callers that receive an unknown code fall back to
// a designated default ([DefaultCategory], [DefaultRelation]) or treat the
// field as absent.
package taxonomy
