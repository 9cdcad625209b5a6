// Package events carries retry progress out of the generation pipeline.
//
// The pipeline reports every retry decision (attempt number, wait before the
// next attempt, failure class) as a RetryEvent. Callers subscribe either per
// call, through a progress callback, or application-wide by registering an
// EventHandler with an EventEmitter. No process-wide state is involved.
//
// The primary components are:
// - RetryEvent: One retry decision made by the pipeline
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
