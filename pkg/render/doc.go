// Package render defines the boundary between a form and the code that
// presents it, plus a name-keyed registry of renderers.
package render
