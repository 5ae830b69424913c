// Package ws exposes the command bar over a WebSocket: clients send
// free-text commands and receive the interpretation result followed by
// the updated document.
package ws
