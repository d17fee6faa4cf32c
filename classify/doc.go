// Package classify turns a sheet's text runs and vector geometry into typed
// compliance components.
//
// Classification is keyword-driven with a fixed priority when a run matches
// several categories: fire safety wins over accessibility, which wins over
// circulation, parking, setbacks, openings, rooms, and height levels, in that
// order. A matched run is combined with nearby dimension annotations
// (clustered by radius) to attach measured attributes, and with the sheet's
// rectangles to recover room boundaries.
//
// A run whose match confidence falls below the configured minimum is still
// emitted, flagged low-confidence, so downstream evaluation can route it to
// human review instead of silently dropping it.
package classify
