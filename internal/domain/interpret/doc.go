// Package interpret turns free-text instructions into typed document
// operations.
//
// One capability, two interchangeable strategies behind it:
//   - Remote: delegates to an external assistant over JSON/HTTP with a
//     bounded editing context, retrying transients and breaking the
//     circuit while the endpoint is down
//   - Rules: a deterministic local pattern engine recognizing the
//     add family (add/insert/create + kind keyword + optional quoted
//     text) and the change family (change/set/update/make + property
//     keyword + quoted text or color token, selection required)
//
// A Selector composes them: remote first, rules when the remote call
// fails or proposes no operations, with the degradation surfaced in
// the reply message.
//
// The package also owns vocabulary normalization: property-key
// synonyms are canonicalized per kind before operations reach the
// mutation API, and string values from the remote strategy are
// stripped of markup.
package interpret
