/*
Package ws streams preview render styles to the host UI over a WebSocket.

On connect the server sends one "styles" message. The client then sends:

	{"type":"viewport","width":1280,"height":800}
	{"type":"ratio","ratio":1.78}
	{"type":"styles"}
	{"type":"ping"}

Each is answered with a "styles" message (or "pong"), carrying the viewport,
every strategy's style and the name of the visible strategy. A viewport
message recomputes only strategies that react to size updates; the others
are answered with their cached style.
*/
package ws
