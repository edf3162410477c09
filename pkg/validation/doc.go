// Package validation evaluates a snapshot of form values against a schema.
// Only the effective field set (base fields plus the fields and lists of the
// currently active branches) is evaluated; anything else is ignored even if
// it holds stale data. Each failing field reports exactly one message, the
// first rule it violates. User input problems are returned as data in Result;
// a returned error always means the schema or the driver values are broken.
package validation
