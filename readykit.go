// Package readykit assembles categorized knowledge-base entries for an
// offline local-readiness assistant. It refreshes a location's entries from
// live public data sources (weather, severe-weather alerts, government
// directories, local businesses), normalizes the heterogeneous responses
// into a uniform document schema, and hands the merged set to a persistence
// collaborator.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or upstream service (e.g., sqlite/, nws/,
// openweather/).
package readykit
