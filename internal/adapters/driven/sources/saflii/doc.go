// Package saflii provides the SAFLII (Southern African Legal Information
// Institute) search source.
//
// A search is one throttled GET against the SAFLII boolean search CGI.
// The result page is parsed with golang.org/x/net/html: each
// ".search-result" element becomes a CaseResult, with citation, date,
// court, tags and judge extracted from its text by independent rules.
// An item that fails to parse is skipped and logged; the rest of the
// page is kept.
//
// Failures are normalised into the domain taxonomy: HTTP 429 wraps
// domain.ErrRateLimited, any other non-2xx status or transport failure
// wraps domain.ErrSourceUnavailable.
package saflii
