// Package campdata reads camp-relevant answers out of a submitted survey.
//
// Surveys are expected to be decorated already (see datatypes.Registry); the
// read path only trusts the stored campDataType property and never resolves
// questions again, so the values seen here are the ones the form author saw
// in the editor.
package campdata
