/*
Package session keeps the live interactive sessions of a server.

Each session is a playback.Session identified by a random UUID. The Manager bounds how
many exist at once and evicts those left untouched for longer than an idle TTL.
*/
package session
