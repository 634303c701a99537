// Package providers derives display values from raw answer data. A provider
// pairs a fitness test with a generator; the registry consults providers in
// registration order and the first fitting provider wins.
package providers
