// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage in ~/.lexai/config.toml
//   - Watcher: reloads the ConfigStore when the file is edited externally
package file
