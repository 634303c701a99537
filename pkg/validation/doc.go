// Package validation reports structural problems in camp survey definitions
// before they reach the form builder or the read path.
package validation
