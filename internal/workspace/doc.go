// Package workspace locates the project a run operates on and enumerates the
// template and configuration files inside it.
//
// Default directories (.launchgen/templates, .launchgen/configs and
// .vscode/launch.json) are resolved relative to the enclosing git worktree,
// so launchgen behaves the same from any subdirectory of a repository. Outside
// a repository the starting directory is used.
package workspace
