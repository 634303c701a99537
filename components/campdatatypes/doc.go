// Package campdatatypes exposes the camp data type registry over net/http so
// the form builder can populate its campDataType dropdown.
//
// The handler responds to GET and HEAD requests with the registered types
// labelled for the negotiated locale. The locale comes from the locale query
// parameter, then the Accept-Language header matched against the locales the
// registry's labels provide, then the configured default.
//
// A health route next to it answers 204 while the registry holds at least
// one type.
package campdatatypes
