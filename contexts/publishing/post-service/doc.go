// Package postservice owns blog posts. Reads are public. Every mutation is
// gated by the authorization policy engine and appends a post event to the
// outbox in the same transaction as the write; the worker relays pending
// events to the event bus.
package postservice
