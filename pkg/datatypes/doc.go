// Package datatypes maps form questions to camp data types: semantic roles
// such as first name or date of birth that downstream export, table and
// matching code look up generically.
//
// Resolution walks the registered types in registration order and returns the
// first whose fit predicate accepts the question. Priority is therefore
// controlled solely by registration order. Register does not reject duplicate
// values; Duplicates reports them so callers can surface the ambiguity.
package datatypes
