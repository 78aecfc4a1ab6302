// Package cache provides short-lived memoization for Sorbet query results.
//
// Hover and type queries often repeat at the same position while a user
// reads code; caching them for a couple of seconds avoids hammering the
// service without serving stale types after an edit. Keys incorporate the
// document version, so edits invalidate implicitly.
package cache
