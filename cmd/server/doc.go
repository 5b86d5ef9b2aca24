// Command server runs the CodeCanvas Studio backend: the virtual-workspace
// service that lets an agent write project files and streams sandboxed
// preview documents to the UI.
package main
