/*
Package http exposes the preview manager to the host UI over Gin.

# Routes

	POST /preview/show      {"url", "domain"}  route a link to a strategy
	POST /preview/hide                         hide every preview
	POST /preview/ratio     {"ratio"}          report the visible content's aspect ratio
	POST /preview/debug     {"debug"}          toggle debug logging
	POST /preview/viewport  {"width","height"} record a viewport resize
	GET  /preview/styles    ?width=&height=    render styles keyed by strategy
	GET  /preview/visible                      the visible strategy, if any
	GET  /preview/status                       visibility and capabilities
	GET  /preview/document                     what the visible surface shows
*/
package http
