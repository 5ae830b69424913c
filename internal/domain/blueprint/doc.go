// Package blueprint converts a structured, versioned external document
// into a ready-to-edit set of screens.
//
// A blueprint declares screens and their content blocks; it is parsed,
// validated, and built into fresh screens in one pass. Import is
// all-or-nothing: any structural problem aborts before mutation, and
// the caller only commits the built result after persisting its patch.
//
// Key Components:
//   - Parse: JSON/YAML decode with fail-fast validation
//   - Build: screens + navigation + serializable patch
//   - Unrecognized block kinds are skipped, not fatal
//
// Example:
//
//	result, err := blueprint.Import(content)
//	if err == nil {
//	    session.ReplaceAll(result.Screens)
//	}
package blueprint
