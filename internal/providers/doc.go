// Package providers implements the tool providers registered with the
// service registry. The files provider is the write surface the agent layer
// uses against a workspace's virtual file system; the preview provider lets
// the agent request a fresh sandbox document explicitly.
package providers
