// Package foundry implements the HTTP client for the hosted agents service.
//
// The client covers the full project capability set: provisioning agents and
// threads, posting messages, starting and inspecting runs, submitting tool
// outputs, listing thread messages, and downloading generated files. Every
// response is decoded into an explicit struct and validated at the boundary;
// failures are categorized so callers can tell transient service trouble from
// permanent protocol or input errors.
//
// Mutating calls (creates, deletes, submits) are issued exactly once: the
// service is idempotent only at the create granularity, so a blind retry
// could provision duplicate agents or threads. Idempotent reads (GetRun,
// ListMessages) retry transient failures with exponential backoff.
package foundry
