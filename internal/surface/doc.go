/*
Package surface defines the isolated rendering surface a preview strategy
draws into, and Proxy, the server-side implementation used by the service.

# Contract

A Surface can Stop its current load, mute audio, Navigate to a URL and report
its CurrentURL. Navigate blocks until the document commits; when a later Stop
or Navigate supersedes it, it fails with an error carrying AbortedMarker so
callers can drop the failure silently (see IsAborted).

# Proxy

Proxy fetches through the shared client and commits a sanitized snapshot:

 1. decode the body to UTF-8 (declared charset, else chardet detection)
 2. remove scripts, frames, plugins, preload hints and 1x1 tracking pixels
 3. drop inline on* handlers and autoplay
 4. absolutize links and media sources
 5. sanitize the remainder with a bluemonday UGC policy extended for media

Images, video and audio responses are wrapped in a single media element; the
surface never decodes them. Navigating to BlankURL releases the document.
*/
package surface
