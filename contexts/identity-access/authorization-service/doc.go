// Package authorization implements the ownership/admin policy engine that gates
// every mutating entry point of the blogging backend.
//
// Layering:
// - domain: actor, resource and decision entities plus the pure PolicyEngine
// - application: use-case wrapper translating contract types and logging decisions
//
// Boundary notes:
// - The engine never reads request state; callers pass the Actor explicitly.
// - The admin set is configuration injected through Dependencies.
package authorization
