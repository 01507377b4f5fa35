// Package resolver turns a candidate preview URL into the URL actually
// navigated to.
//
// HTTP follows redirect chains (link shorteners, tracking redirects, http to
// https upgrades) with HEAD, falling back to GET when a server refuses HEAD.
// Func adapts plain functions, such as the embed URL rewrite used by the video
// strategy.
package resolver
