// Package functions implements the helper functions exposed to the survey
// expression engine. Every function receives a positional slice of already
// evaluated arguments, mirroring how SurveyJS invokes registered functions.
//
// Two failure contracts coexist on purpose. The date helpers (htmlDate,
// htmlDateOrEmpty, subtractYears) and objectValues never fail: invalid input
// yields a sentinel (nil or ""), which callers must treat as "no value".
// isMinor fails hard with an error on bad arity or unparseable dates.
package functions
